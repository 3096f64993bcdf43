package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrDuplicateSKU, ErrAlreadyDeleted, ErrInvalidInput, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("abc-123")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "abc-123")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// The constraint-violation path and the pre-check path must collapse into the
// same outcome, so both build from this constructor.
func TestDuplicateSKU(t *testing.T) {
	err := DuplicateSKU("KB-TKL-01")
	require.NotNil(t, err)
	assert.Equal(t, "DUPLICATE_SKU", err.Code)
	assert.Contains(t, err.Message, "KB-TKL-01")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrDuplicateSKU))
}

func TestAlreadyDeleted(t *testing.T) {
	err := AlreadyDeleted("abc-123")
	require.NotNil(t, err)
	assert.Equal(t, "ALREADY_DELETED", err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrAlreadyDeleted))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestInternal_HidesCause(t *testing.T) {
	cause := fmt.Errorf("pq: relation does not exist")
	err := Internal(cause)
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.True(t, errors.Is(err, cause))
}

// --- HTTPStatus mapping ---

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"app error carries its status", DuplicateSKU("X"), http.StatusConflict},
		{"wrapped app error", fmt.Errorf("create: %w", NotFound("p1")), http.StatusNotFound},
		{"bare not found sentinel", ErrNotFound, http.StatusNotFound},
		{"bare duplicate sentinel", ErrDuplicateSKU, http.StatusConflict},
		{"bare already deleted sentinel", ErrAlreadyDeleted, http.StatusConflict},
		{"bare invalid input sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}
