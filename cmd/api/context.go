package main

import (
	"context"
	"net/http"
)

type contextKey string

const usernameContextKey = contextKey("username")

// setUsernameContext attaches the verified token subject to the request
// context. An empty username means the request is anonymous.
func (app *application) setUsernameContext(r *http.Request, username string) *http.Request {
	ctx := context.WithValue(r.Context(), usernameContextKey, username)
	return r.WithContext(ctx)
}

func (app *application) getUsernameContext(r *http.Request) string {
	username, ok := r.Context().Value(usernameContextKey).(string)
	if !ok {
		return ""
	}
	return username
}
