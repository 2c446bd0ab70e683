package middleware

import (
	"context"
	"net/http"
	"strings"

	"pixelgram/internal/httputil"
	"pixelgram/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// claimsKey is the context key for the authenticated identity
const claimsKey contextKey = "claims"

// Auth validates the bearer token and stores the claims in the request
// context. A missing token is 401; a token that fails verification
// (bad signature, expired) is 403.
func Auth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Access token required")
				return
			}

			claims, err := auth.VerifyToken(tokenString)
			if err != nil {
				httputil.WriteForbidden(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves claims when a valid token is present and proceeds
// anonymously otherwise. Read endpoints use it so isLiked/isFollowing
// bind the viewer when one exists.
func OptionalAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString != "" {
				if claims, err := auth.VerifyToken(tokenString); err == nil {
					ctx := context.WithValue(r.Context(), claimsKey, claims)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// ClaimsFromContext extracts the authenticated identity from the request
// context. Returns nil and false for anonymous requests.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok
}

// ViewerID returns the authenticated user's id, or 0 for anonymous
// requests. The zero value is bound into viewer-relative queries and
// matches no row.
func ViewerID(ctx context.Context) int64 {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return 0
}
