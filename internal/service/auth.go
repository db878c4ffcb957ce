package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/esimly/backend/internal/domain"
)

// TokenVerifier validates HS256 access tokens issued by the identity provider.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a TokenVerifier sharing secret with the identity provider.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// VerifyToken validates a JWT token and returns the claims.
func (v *TokenVerifier) VerifyToken(tokenStr string) (*domain.JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrUnauthorized("token has no subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &domain.JWTClaims{Sub: sub, Email: email, Role: role}, nil
}
