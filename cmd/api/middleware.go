package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

// extractTokenFromHeader returns the bearer token from an Authorization
// header value, or "" when the header does not carry one.
func extractTokenFromHeader(header string) string {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}

	return token
}

// authenticate extracts and verifies a bearer token on every request. A
// missing header or prefix is not an error: the request simply proceeds
// anonymous. A token that fails verification also leaves the request
// anonymous; whether an anonymous request may continue is the authorize
// step's decision, not this one's.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Authorization")

		token := extractTokenFromHeader(r.Header.Get("Authorization"))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		username, err := app.tokenService.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r = app.setUsernameContext(r, username)
		next.ServeHTTP(w, r)
	})
}

// authorize enforces the route policy: requests to routes outside the
// public allow-list must carry a verified identity.
func (app *application) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.policy.isPublic(r) && app.getUsernameContext(r) == "" {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
