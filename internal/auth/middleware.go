// internal/auth/middleware.go
package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey struct{ name string }

var userIDKey = &contextKey{"user-id"}

// UserID returns the authenticated user ID stored in the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Middleware authenticates requests by verifying the bearer token and placing
// the resolved user ID in the request context. Requests without a valid token
// get a 401 and never reach the handler.
func Middleware(m *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeUnauthorized(w)
				return
			}

			userID, err := m.Verify(tokenString)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthenticated"}`))
}
