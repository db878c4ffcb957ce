package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/contextkeys"
	"github.com/esimly/backend/internal/domain"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logrus.WithError(err).Error("failed to encode JSON response")
		}
	}
}

// Error writes an error JSON response, using AppError status codes when available.
func Error(w http.ResponseWriter, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		if appErr.Code >= http.StatusInternalServerError {
			logrus.WithError(err).Error(appErr.Message)
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.Message})
		return
	}
	logrus.WithError(err).Error("unhandled error")
	JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// DecodeJSON decodes a JSON request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrBadRequest("invalid JSON body")
	}
	return nil
}

// userID returns the authenticated user, or "" on public routes.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(contextkeys.UserID).(string)
	return id
}

// requireUser writes a 401 and returns false when the request is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := userID(r)
	if id == "" {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return "", false
	}
	return id, true
}
