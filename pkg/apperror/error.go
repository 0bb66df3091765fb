package apperror

import (
	"errors"
	"net/http"

	"go-jobtracker-backend/internal/domain"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// FromDomain maps the sync engine's failure taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal error.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return New(http.StatusUnauthorized, "Not authenticated", err)
	case errors.Is(err, domain.ErrNotFound):
		return New(http.StatusNotFound, "Application not found", err)
	case errors.Is(err, domain.ErrRowPending):
		return New(http.StatusConflict, "Row creation still in flight, try again", err)
	case errors.Is(err, domain.ErrRemoteRejected):
		return New(http.StatusUnprocessableEntity, "The store rejected the change", err)
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return New(http.StatusServiceUnavailable, "The store is unavailable, try again later", err)
	default:
		return Internal(err)
	}
}
