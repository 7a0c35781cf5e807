package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// auth resource
	router.HandlerFunc(http.MethodPost, "/api/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/auth/validate", app.validateTokenHandler)

	// post resource
	router.HandlerFunc(http.MethodPost, "/api/posts", app.createPostHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug", app.getPostHandler)
	router.HandlerFunc(http.MethodPut, "/api/posts/:slug", app.updatePostHandler)
	router.HandlerFunc(http.MethodDelete, "/api/posts/:slug", app.deletePostHandler)

	return app.recoverPanic(app.logRequest(app.authenticate(app.authorize(router))))
}
