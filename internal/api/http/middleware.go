package http

import (
	"context"
	"net/http"
	"strings"

	"volunteer-marketplace-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware validates the bearer token and stores the user id in the
// request context. Requests without a valid access token are rejected.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims.Type != security.TokenTypeAccess {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid access token"})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware extracts the user id when a valid token is present
// but lets anonymous requests through; public listings use it.
func OptionalAuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				if claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer ")); err == nil && claims.Type == security.TokenTypeAccess {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, claims.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// userIDFromContext returns the authenticated user id, or 0 for anonymous
// requests.
func userIDFromContext(ctx context.Context) int32 {
	if id, ok := ctx.Value(userIDKey).(int32); ok {
		return id
	}
	return 0
}
