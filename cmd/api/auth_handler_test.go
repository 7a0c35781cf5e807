package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/kamelthinks/internal/tokenservice"
)

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantBody   envelope
	}{
		{
			name: "valid request",
			payload: map[string]any{
				"username": "alice",
				"password": "secret",
			},
			wantStatus: http.StatusOK,
			wantBody:   envelope{"message": "User registered successfully"},
		},
		{
			name: "duplicate username",
			payload: map[string]any{
				"username": "alice",
				"password": "secret",
			},
			wantStatus: http.StatusConflict,
			wantBody:   envelope{"error": "Username already exists"},
		},
		{
			name: "missing password",
			payload: map[string]any{
				"username": "bob",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   envelope{"error": map[string]any{"password": "must be provided"}},
		},
		{
			name:       "empty payload",
			payload:    map[string]any{},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   envelope{"error": map[string]any{"username": "must be provided", "password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/auth/register", tc.payload, nil)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.Equal(t, tc.wantBody, body)
			}
		})
	}

	// the duplicate registration never wrote a second record
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'alice'").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, _ := ts.post(t, "/api/auth/register", map[string]any{"username": "alice", "password": "secret"}, nil)
	assert.Equal(t, http.StatusOK, status)

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name:       "correct credentials",
			payload:    map[string]any{"username": "alice", "password": "secret"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			payload:    map[string]any{"username": "alice", "password": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown username",
			payload:    map[string]any{"username": "mallory", "password": "secret"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/auth/login", tc.payload, nil)

			assert.Equal(t, tc.wantStatus, status)

			if tc.wantStatus == http.StatusOK {
				token, ok := body["token"].(string)
				assert.True(t, ok)
				assert.NotEmpty(t, token)

				// the issued token verifies back to the same username
				username, err := app.tokenService.Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, "alice", username)
			} else {
				assert.Equal(t, envelope{"error": "invalid authentication credentials"}, body)
			}
		})
	}
}

func TestValidateTokenHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	validToken, err := app.tokenService.Issue("alice")
	assert.NoError(t, err)

	expiredService, err := tokenservice.New("test-secret-test-secret-test-secret!", time.Millisecond)
	assert.NoError(t, err)
	expiredToken, err := expiredService.Issue("alice")
	assert.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	testCases := []struct {
		name       string
		token      *string
		wantStatus int
		wantBody   envelope
	}{
		{
			name:       "valid token",
			token:      &validToken,
			wantStatus: http.StatusOK,
			wantBody:   envelope{"message": "User alice is valid"},
		},
		{
			name:       "missing header",
			token:      nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			token:      strptr("not-a-token"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			token:      &expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.get(t, "/api/auth/validate", tc.token)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.Equal(t, tc.wantBody, body)
			}
		})
	}
}

func TestAuthScenario(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, _ := ts.post(t, "/api/auth/register", map[string]any{"username": "alice", "password": "secret"}, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, body := ts.post(t, "/api/auth/register", map[string]any{"username": "alice", "password": "secret"}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already exists", body["error"])

	status, _, body = ts.post(t, "/api/auth/login", map[string]any{"username": "alice", "password": "secret"}, nil)
	assert.Equal(t, http.StatusOK, status)
	token, ok := body["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	status, _, body = ts.get(t, "/api/auth/validate", &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User alice is valid", body["message"])
}
