package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/contextkeys"
)

// Logger logs each HTTP request with method, path, status, duration and request id.
func Logger(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			reqID, _ := r.Context().Value(contextkeys.RequestID).(string)
			entry := logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  reqID,
			})
			switch {
			case ww.status >= 500:
				entry.Error("request failed")
			case ww.status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
