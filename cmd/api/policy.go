package main

import (
	"net/http"
	"strings"
)

// routePolicy is the authorization policy for the API: an allow-list of
// route prefixes that may be served without an authenticated identity.
// Every current route is public, so the API behaves exactly like an
// allow-everything policy, but tightening access later is an edit to this
// table rather than a logic change.
type routePolicy struct {
	public []routeRule
}

type routeRule struct {
	method string
	prefix string
}

func defaultRoutePolicy() routePolicy {
	return routePolicy{
		public: []routeRule{
			{method: http.MethodGet, prefix: "/api/healthcheck"},
			{method: http.MethodPost, prefix: "/api/auth/"},
			{method: http.MethodGet, prefix: "/api/auth/"},
			{method: http.MethodPost, prefix: "/api/posts"},
			{method: http.MethodGet, prefix: "/api/posts"},
			{method: http.MethodPut, prefix: "/api/posts/"},
			{method: http.MethodDelete, prefix: "/api/posts/"},
		},
	}
}

// isPublic reports whether the request may proceed without identity.
func (p routePolicy) isPublic(r *http.Request) bool {
	for _, rule := range p.public {
		if rule.method == r.Method && strings.HasPrefix(r.URL.Path, rule.prefix) {
			return true
		}
	}

	return false
}
