package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/kamelthinks/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	rabbitURI := common.TestRabbitMQ(t)
	broker, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(broker)
	assert.NoError(t, err)

	t.Cleanup(func() {
		broker.Close()
	})

	return NewUserService(db, broker, cache), db
}

func TestRegister(t *testing.T) {
	s, db := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{
			name:     "valid user",
			username: "alice",
			password: "secret",
		},
		{
			name:        "duplicate username",
			username:    "alice",
			password:    "another",
			expectedErr: ErrDuplicateUsername,
		},
		{
			name:        "empty username",
			username:    "",
			password:    "secret",
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided"}},
		},
		{
			name:        "empty password",
			username:    "bob",
			password:    "",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			err := s.Register(ctx, tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)
		})
	}

	// only the first registration wrote a row
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'alice'").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	s, db := setupTestEnvironment(t)

	ctx := context.Background()

	err := s.Register(ctx, "alice", "secret")
	assert.NoError(t, err)

	var hash []byte
	err = db.QueryRow("SELECT password_hash FROM users WHERE username = 'alice'").Scan(&hash)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, string(hash), "secret")
}

func TestAuthenticate(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	err := s.Register(ctx, "alice", "secret")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: "secret",
		},
		{
			name:        "wrong password",
			username:    "alice",
			password:    "wrong",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown username",
			username:    "mallory",
			password:    "secret",
			expectedErr: ErrAuthenticationFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := s.Authenticate(ctx, tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr == nil {
				assert.Equal(t, tc.username, user.Username)
				assert.NotZero(t, user.ID)
			}
		})
	}
}

func TestAuthenticateUsesCache(t *testing.T) {
	s, db := setupTestEnvironment(t)

	ctx := context.Background()

	err := s.Register(ctx, "alice", "secret")
	assert.NoError(t, err)

	// first call populates the cache
	_, err = s.Authenticate(ctx, "alice", "secret")
	assert.NoError(t, err)

	// the row can now disappear without affecting lookups
	_, err = db.Exec("DELETE FROM users WHERE username = 'alice'")
	assert.NoError(t, err)

	_, err = s.Authenticate(ctx, "alice", "secret")
	assert.NoError(t, err)
}
