package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError reports input that breaks a ticket rule
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause)
}

// NewNotFoundError reports a missing resource, e.g. NewNotFoundError("ticket", "12")
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewDatabaseError wraps a store failure. Deadline and cancellation causes
// become timeouts.
func NewDatabaseError(operation string, cause error) *AppError {
	if errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, context.Canceled) {
		return NewTimeoutError(operation, cause)
	}
	return newAppError(ErrorTypeDatabase, "database operation failed: "+operation, cause).
		WithContext("operation", operation)
}

// NewInvalidInputError reports a malformed request parameter
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

func NewTimeoutError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeTimeout, "operation timed out: "+operation, cause).
		WithContext("operation", operation)
}

// NewUnavailableError reports a backend that cannot be reached
func NewUnavailableError(backend string, cause error) *AppError {
	return newAppError(ErrorTypeUnavailable, backend+" is unavailable", cause).
		WithContext("backend", backend)
}

// WrapError wraps err as an app error of the given type. The code is the
// type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	appErr := newAppError(errorType, message, err)
	appErr.Code = errorType.String()
	return appErr
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns a message safe to show to dashboard users
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if public := appErr.Type.kind().public; public != "" {
		return public
	}
	return appErr.Message
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return unknownKind.code
}

// HTTPStatus returns the status code for err; unknown errors are 500
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// ShouldLogError reports whether err points at a server side problem
// rather than bad input
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.kind().logged
	}
	return true
}
