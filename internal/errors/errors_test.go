package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypeUnavailable, "unavailable"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "invalid input"}
	assert.Equal(t, "validation: invalid input", plain.Error())

	wrapped := &AppError{Type: ErrorTypeDatabase, Message: "connection failed", Cause: errors.New("timeout")}
	assert.Equal(t, "database: connection failed (caused by: timeout)", wrapped.Error())
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("original error")
	appErr := NewDatabaseError("insert ticket", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.True(t, appErr.Is(&AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}))
	assert.False(t, appErr.Is(&AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}))
	assert.False(t, appErr.Is(cause))
}

func TestAppError_Context(t *testing.T) {
	appErr := &AppError{Type: ErrorTypeValidation}
	assert.Same(t, appErr, appErr.WithContext("field", "service"))

	value, ok := appErr.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "service", value)

	_, ok = appErr.GetContext("missing")
	assert.False(t, ok)

	appErr.Context = nil
	_, ok = appErr.GetContext("field")
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	notFound := NewNotFoundError("ticket", "42")
	assert.Equal(t, "ticket not found: 42", notFound.Message)
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	resource, _ := notFound.GetContext("resource")
	assert.Equal(t, "ticket", resource)

	invalid := NewInvalidInputError("id", "abc", "must be a number")
	assert.Equal(t, "invalid input for id: must be a number", invalid.Message)
	assert.Equal(t, ErrorTypeInvalidInput, invalid.Type)

	unavailable := NewUnavailableError("postgres", errors.New("dial tcp"))
	assert.Equal(t, "postgres is unavailable", unavailable.Message)

	wrapped := WrapError(errors.New("boom"), ErrorTypeTimeout, "report took too long")
	assert.Equal(t, "timeout", wrapped.Code)
}

func TestNewDatabaseError_DeadlineBecomesTimeout(t *testing.T) {
	err := NewDatabaseError("list tickets", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("service layer: %w", NewNotFoundError("ticket", "7"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("service is required", nil), "service is required"},
		{"not found", NewNotFoundError("ticket", "1"), "ticket not found: 1"},
		{"database", NewDatabaseError("insert", errors.New("disk full")), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("report", nil), "The operation timed out. Please try again."},
		{"unavailable", NewUnavailableError("postgres", nil), "The backend is unavailable. Please try again later."},
		{"plain", errors.New("plain failure"), "plain failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetUserMessage(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("bad", nil)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewInvalidInputError("id", "x", "bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("ticket", "1")))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(NewTimeoutError("list", nil)))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(NewUnavailableError("db", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewDatabaseError("x", errors.New("y"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestGetErrorCodeAndShouldLog(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", GetErrorCode(NewNotFoundError("ticket", "1")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))

	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.True(t, ShouldLogError(NewDatabaseError("insert", errors.New("x"))))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
