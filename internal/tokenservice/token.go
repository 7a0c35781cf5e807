package tokenservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies signed bearer tokens carrying a username
// subject. The signing key is fixed at construction time so that concurrent
// first use cannot race on initialization.
type TokenService struct {
	key      []byte
	lifetime time.Duration
}

// New builds a TokenService from the configured secret and token lifetime.
// An unusable secret or lifetime is a startup failure, not a per-request one.
func New(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes, got %d", len(secret))
	}

	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}

	return &TokenService{
		key:      []byte(secret),
		lifetime: lifetime,
	}, nil
}

// Issue creates a signed token with subject=username, issued now and expiring
// after the configured lifetime.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the token signature, structure and expiry and returns the
// subject username. Any failure is reported as ErrInvalidToken; the caller
// gets no detail about why a token was rejected. Expiry is compared exactly,
// with no leeway window.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}

	return s.key, nil
}
