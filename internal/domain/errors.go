package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries the HTTP status and the message shown to the caller.
// Err is logged but never rendered.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches another AppError by status code, so errors.Is(err, &AppError{Code: 404}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && t.Message == ""
}

func newError(code int, msg string, err error) *AppError {
	return &AppError{Code: code, Message: msg, Err: err}
}

// Caller mistakes.

func ErrBadRequest(msg string) *AppError   { return newError(http.StatusBadRequest, msg, nil) }
func ErrUnauthorized(msg string) *AppError { return newError(http.StatusUnauthorized, msg, nil) }
func ErrNotFound(msg string) *AppError     { return newError(http.StatusNotFound, msg, nil) }

// ErrConflict rejects a change that does not fit the order's current state.
func ErrConflict(msg string) *AppError { return newError(http.StatusConflict, msg, nil) }

// ErrValidation is a user-facing rejection of entered values or of a backend verdict.
func ErrValidation(msg string) *AppError { return newError(http.StatusUnprocessableEntity, msg, nil) }

// ErrRateLimited tells the caller to slow down.
func ErrRateLimited(msg string) *AppError { return newError(http.StatusTooManyRequests, msg, nil) }

// Our side.

// ErrUpstream reports a failure talking to the storefront backend.
func ErrUpstream(msg string, err error) *AppError { return newError(http.StatusBadGateway, msg, err) }

func ErrInternal(msg string, err error) *AppError {
	return newError(http.StatusInternalServerError, msg, err)
}

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
