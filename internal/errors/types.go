package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeUnavailable
)

// kind describes how one error category is named, coded and surfaced
type kind struct {
	name   string
	code   string
	status int
	// public is shown to users instead of the error's own message; empty
	// means the message itself is safe to show
	public string
	logged bool
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED", status: http.StatusBadRequest},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND", status: http.StatusNotFound},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT", status: http.StatusBadRequest},
	ErrorTypeDatabase: {
		name: "database", code: "DATABASE_ERROR", status: http.StatusInternalServerError,
		public: "A database error occurred. Please try again.", logged: true,
	},
	ErrorTypeTimeout: {
		name: "timeout", code: "TIMEOUT", status: http.StatusGatewayTimeout,
		public: "The operation timed out. Please try again.", logged: true,
	},
	ErrorTypeUnavailable: {
		name: "unavailable", code: "UNAVAILABLE", status: http.StatusServiceUnavailable,
		public: "The backend is unavailable. Please try again later.", logged: true,
	},
}

var unknownKind = kind{
	name:   "unknown",
	code:   "UNKNOWN_ERROR",
	status: http.StatusInternalServerError,
	public: "An unexpected error occurred. Please try again.",
	logged: true,
}

func (et ErrorType) kind() kind {
	if k, ok := kinds[et]; ok {
		return k
	}
	return unknownKind
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	return et.kind().name
}

// HTTPStatus maps the error type onto the status code the API answers with
func (et ErrorType) HTTPStatus() int {
	return et.kind().status
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func newAppError(t ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Code:    t.kind().code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}
