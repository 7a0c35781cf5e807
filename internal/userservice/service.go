package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sushihentaime/kamelthinks/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
		c:  c,
	}
}

// Register creates a new user account with a hashed password and publishes a
// user.registered event. A taken username returns ErrDuplicateUsername
// without writing anything.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	u := User{Username: username}

	if err := u.Password.set(password); err != nil {
		return err
	}

	if err := s.m.insert(ctx, &u); err != nil {
		return err
	}

	data := struct {
		Username string `json:"username"`
	}{
		Username: u.Username,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, eventData, common.UserRegisteredKey, common.UserExchange)
}

// Authenticate looks up the user by username and compares the password hash.
// An unknown username and a wrong password are indistinguishable to the
// caller: both return ErrAuthenticationFailure.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.lookupUser(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

// lookupUser reads through the cache. Caching is safe here because user
// records are never updated or deleted.
func (s *UserService) lookupUser(ctx context.Context, username string) (*User, error) {
	key := common.CacheKeyUserByUsername(username)

	if cached, ok := s.c.Get(key); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user)

	return user, nil
}
