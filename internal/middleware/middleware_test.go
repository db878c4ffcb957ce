package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/esimly/backend/internal/contextkeys"
	"github.com/esimly/backend/internal/domain"
)

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*domain.JWTClaims, error) {
	if token != "good" {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}
	return &domain.JWTClaims{Sub: "u1", Email: "a@b.c"}, nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := r.Context().Value(contextkeys.UserID).(string)
	w.Write([]byte(uid))
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	h := Auth(fakeVerifier{})(http.HandlerFunc(echoUser))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer bad").Code)

	rec := serve(h, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(fakeVerifier{})(http.HandlerFunc(echoUser))

	assert.Equal(t, "", serve(h, "").Body.String())
	assert.Equal(t, "", serve(h, "Bearer bad").Body.String())
	assert.Equal(t, "u1", serve(h, "bearer good").Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(contextkeys.RequestID).(string)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	const id = "6f1c3a5e-2b7d-4c3e-9a1f-0d2e4b6a8c9f"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, id, seen)
}

func TestRecovery(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterByUser(t *testing.T) {
	rl := NewRateLimiter(1, 1).WithKey(ByUser)
	defer rl.Stop()
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if user != "" {
			req = req.WithContext(context.WithValue(req.Context(), contextkeys.UserID, user))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send("u1").Code)
	rec := send("u1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit")

	assert.Equal(t, http.StatusNoContent, send("u2").Code, "users behind one address have their own bucket")
	assert.Equal(t, http.StatusNoContent, send("").Code, "anonymous requests fall back to the address")
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", extractClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", extractClientIP(req))
}
