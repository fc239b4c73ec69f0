package middleware

import (
	"context"
	"net/http"

	"github.com/dstam/planner/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionKey contextKey = "session"

// GetSession extracts the resolved session from the context. Returns
// the zero session (mode none) if resolution never ran.
func GetSession(ctx context.Context) session.Session {
	s, _ := ctx.Value(sessionKey).(session.Session)
	return s
}

// ResolveSession resolves each request's session and stores it in the
// context. It never rejects: an unresolvable session flows through as
// mode none and the handlers decide what that means.
func ResolveSession(resolver *session.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolver.Resolve(r)
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
