// Package reqid assigns every HTTP request an ID, stores it in the request
// context and echoes it in the X-Request-ID response header.
//
//	r.Use(reqid.Middleware())
//	...
//	id := reqid.FromCtx(r.Context())
package reqid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// inbound IDs are honoured only when they look like an opaque token, so
// a client cannot inject arbitrary text into log lines.
var validID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// New generates a random UUIDv4 request ID.
func New() string {
	return uuid.NewString()
}

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx, or "" if none is present.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses an upstream X-Request-ID when it is well formed and
// otherwise generates a new one.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !validID.MatchString(id) {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
