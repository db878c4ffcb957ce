package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifyToken(t *testing.T) {
	v := NewTokenVerifier("secret")

	tok := sign(t, "secret", jwt.MapClaims{"sub": "u1", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()})
	claims, err := v.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Sub)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestVerifyTokenRejects(t *testing.T) {
	v := NewTokenVerifier("secret")
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"wrong secret": sign(t, "other", jwt.MapClaims{"sub": "u1", "exp": exp}),
		"expired":      sign(t, "secret", jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    sign(t, "secret", jwt.MapClaims{"sub": "u1"}),
		"no subject":   sign(t, "secret", jwt.MapClaims{"exp": exp}),
		"garbage":      "not-a-token",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(tok)
			assert.Error(t, err)
		})
	}
}
