package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for expected catalog outcomes. Handlers translate these to
// client-facing statuses; anything else is an unexpected failure.
var (
	ErrNotFound       = errors.New("product not found")
	ErrDuplicateSKU   = errors.New("duplicate sku")
	ErrAlreadyDeleted = errors.New("product already deleted")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error for a product absent by id.
func NotFound(id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("product with id %s not found", id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// DuplicateSKU creates a 409 error for a SKU uniqueness violation, whether it
// was caught by the pre-insert check or by the storage constraint.
func DuplicateSKU(sku string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_SKU",
		Message: fmt.Sprintf("product with SKU %q already exists", sku),
		Status:  http.StatusConflict,
		Err:     ErrDuplicateSKU,
	}
}

// AlreadyDeleted creates a 409 error for a repeated soft delete.
func AlreadyDeleted(id string) *AppError {
	return &AppError{
		Code:    "ALREADY_DELETED",
		Message: fmt.Sprintf("product with id %s is already deleted", id),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyDeleted,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Internal creates a 500 error. The wrapped cause is logged, never exposed.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSKU), errors.Is(err, ErrAlreadyDeleted):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
