package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the error type every usecase returns for an expected failure.
// StatusCode is the HTTP status the envelope carries.
type Error struct {
	StatusCode int
	Message    string
	Errors     []string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithDetail appends a structured detail line shown to the client.
func (e *Error) WithDetail(detail string) *Error {
	e.Errors = append(e.Errors, detail)
	return e
}

func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

func Validation(message string) *Error { return New(http.StatusBadRequest, message) }

func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// Upstream wraps a store or media-service failure. The cause is kept for logs only.
func Upstream(message string, err error) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// From returns err as *Error, converting anything unknown into a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Upstream("internal server error", err)
}

// IsStatus reports whether err carries the given status code.
func IsStatus(err error, statusCode int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.StatusCode == statusCode
}
