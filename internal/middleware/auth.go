package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/esimly/backend/internal/contextkeys"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/handler"
	"github.com/esimly/backend/pkg/backend"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.JWTClaims, error)
}

// Auth creates a JWT authentication middleware.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "no token provided"})
				return
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				handler.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), token, claims)))
		})
	}
}

// OptionalAuth attaches the user when a valid token is present and lets anonymous requests through.
func OptionalAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
				if claims, err := verifier.VerifyToken(token); err == nil {
					r = r.WithContext(withClaims(r.Context(), token, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// withClaims stores user info in context and forwards the token to backend calls.
func withClaims(ctx context.Context, token string, claims *domain.JWTClaims) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserID, claims.Sub)
	ctx = context.WithValue(ctx, contextkeys.UserEmail, claims.Email)
	return backend.WithToken(ctx, token)
}
