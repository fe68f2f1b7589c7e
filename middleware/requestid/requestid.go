// Package requestid assigns a UUID to every request that doesn't already
// carry one in its X-Request-ID header, so downstream logging and tracing
// can correlate a request across the demo server's middleware stack.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

// Header is the HTTP header carrying the request ID, both inbound (if the
// caller already set one) and outbound (echoed in the response).
const Header = "X-Request-ID"

// Middleware reads Header from the incoming request, generating a new
// UUID if absent, storing it in the request context and echoing it on the
// response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := context.WithValue(r.Context(), contextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request ID stashed by Middleware, or "" if none
// is present (e.g. the handler was invoked outside the middleware chain).
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
