package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"ops-dashboard/internal/errors"
)

// ValidationErrorType classifies a field problem
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue     ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange     ValidationErrorType = "invalid_range"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
	ErrorTypeInvalidTimestamp ValidationErrorType = "invalid_timestamp"
)

// FieldError is one problem with one ticket field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s (%s): %s", fe.Field, fe.Type, fe.Message)
}

// ValidationError collects every field problem found in one pass
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty collection
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	switch len(parts) {
	case 0:
		return "validation error"
	case 1:
		return "validation error: " + parts[0]
	default:
		return fmt.Sprintf("%d validation errors: %s", len(parts), strings.Join(parts, "; "))
	}
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// HasErrors returns true once any problem has been added
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ErrorOrNil returns the collected problems as an app error, or nil when
// there are none
func (ve *ValidationError) ErrorOrNil() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve.AsAppError()
}

// AsAppError wraps the collection in a validation app error listing the
// offending fields under the "fields" context key
func (ve *ValidationError) AsAppError() *errors.AppError {
	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve).WithContext("fields", fields)
}

// GetUserFriendlyMessage joins the field messages for display
func (ve *ValidationError) GetUserFriendlyMessage() string {
	msgs := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		msgs[i] = fe.Message
	}
	switch len(msgs) {
	case 0:
		return "Input validation failed"
	case 1:
		return msgs[0]
	default:
		return fmt.Sprintf("%d problems: %s", len(msgs), strings.Join(msgs, "; "))
	}
}

// GetFieldErrors returns the problems recorded for field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// AddError records a problem with a field
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, field+" is required", nil)
}

// AddInvalidLengthError records a length problem; a zero bound is open
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	var msg string
	switch {
	case min > 0 && max > 0:
		msg = fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		msg = fmt.Sprintf("%s must be at least %d characters long", field, min)
	case max > 0:
		msg = fmt.Sprintf("%s must be at most %d characters long", field, max)
	default:
		msg = field + " has invalid length"
	}
	ve.AddError(field, ErrorTypeInvalidLength, msg, value)
}

func (ve *ValidationError) AddInvalidTimestampError(field string, value string) {
	ve.AddError(field, ErrorTypeInvalidTimestamp, field+" is not a valid timestamp, expected YYYY-MM-DDTHH:MM", value)
}

func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, field+" "+reason, value)
}

func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidRange, field+" "+reason, value)
}

func (ve *ValidationError) AddInvalidCharacterError(field string, value interface{}) {
	ve.AddError(field, ErrorTypeInvalidCharacter, field+" contains control characters", value)
}
