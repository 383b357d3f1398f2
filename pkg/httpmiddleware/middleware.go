// Package httpmiddleware provides the HTTP middleware chain used by the API
// server: panic recovery, request IDs, request-scoped logging, and OpenTelemetry
// instrumentation.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(next http.Handler) http.Handler

// Wrap applies the given middlewares to h. The first middleware in the list
// becomes the outermost wrapper, so it sees the request first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
