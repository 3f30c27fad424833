// Package apperror holds the structured error type shared by services and
// HTTP handlers. Business errors carry a machine-readable code and the HTTP
// status the boundary should answer with.
package apperror

import (
	"fmt"
	"net/http"
)

// Error codes surfaced in API responses.
const (
	CodeInternal               = "INTERNAL_ERROR"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeNotFound               = "NOT_FOUND"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeUpstreamService        = "UPSTREAM_SERVICE_ERROR"
	CodeServiceUnavailable     = "SERVICE_UNAVAILABLE"
)

// AppError is the standard error type for the service.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	HTTPStatus int   `json:"-"`
	Err        error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to the error details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewInvalidInput creates a malformed-request error (400).
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorized creates an authentication error (401).
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewNotFound creates a not-found error (404) naming the missing entity.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInsufficientStock creates a stock shortage error (422) naming the item.
func NewInsufficientStock(itemName string, requested, available float64) *AppError {
	return &AppError{
		Code:       CodeInsufficientStock,
		Message:    fmt.Sprintf("insufficient %s in inventory", itemName),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"item":      itemName,
			"requested": requested,
			"available": available,
		},
	}
}

// NewConcurrentModification reports a lost conditional write (409): another
// request consumed the same inventory lot between plan and commit.
func NewConcurrentModification(message string) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewUpstreamService reports a failure of an external collaborator (502).
func NewUpstreamService(message string) *AppError {
	return &AppError{
		Code:       CodeUpstreamService,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewServiceUnavailable reports a feature disabled by configuration (503).
func NewServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewInternal wraps an unexpected error (500). The message shown to callers
// stays generic; the cause is for logs only.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
