package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const GuardKey contextKey = "auth_guard"

// Guard middleware extracts the X-Auth-Guard header into the request
// context. The header is optional; authorization decisions come from
// the token, the guard only lets handlers cross-check the realm the
// client believes it is talking to.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guard := r.Header.Get("X-Auth-Guard")
		if guard == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), GuardKey, guard)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetGuard extracts the client-declared guard from context
func GetGuard(ctx context.Context) (string, bool) {
	guard, ok := ctx.Value(GuardKey).(string)
	return guard, ok
}
