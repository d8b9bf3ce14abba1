package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/linkgenetic/linkid-resolver/internal/app/service"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// IdentityKey stores the authenticated *service.Identity in the request
// context. Absent when no valid credential was presented; handlers decide
// between 401 and 403.
const IdentityKey ContextKey = "identity"

// IdentityFromContext extracts the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*service.Identity)
	return identity, ok
}

// WithAuth parses an Authorization: Bearer token and injects the resulting
// identity into the request context. Invalid or missing tokens are not an
// error at this layer; the request proceeds anonymously.
func WithAuth(auth service.AuthIface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := auth.Authenticate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
