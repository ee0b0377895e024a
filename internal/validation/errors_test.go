package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/errors"
)

func TestValidationError_Messages(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())
	assert.Equal(t, "validation error", ve.Error())
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())
	assert.NoError(t, ve.ErrorOrNil())

	ve.AddRequiredError("service")
	assert.Equal(t, "validation error: service (required): service is required", ve.Error())
	assert.Equal(t, "service is required", ve.GetUserFriendlyMessage())

	ve.AddInvalidLengthError("operator", "x", 0, 10)
	assert.Contains(t, ve.Error(), "2 validation errors")
	assert.Equal(t, "2 problems: service is required; operator must be at most 10 characters long", ve.GetUserFriendlyMessage())
}

func TestValidationError_LengthMessages(t *testing.T) {
	tests := []struct {
		min, max int
		want     string
	}{
		{1, 10, "f must be between 1 and 10 characters long"},
		{2, 0, "f must be at least 2 characters long"},
		{0, 5, "f must be at most 5 characters long"},
		{0, 0, "f has invalid length"},
	}
	for _, tt := range tests {
		ve := NewValidationError()
		ve.AddInvalidLengthError("f", "", tt.min, tt.max)
		assert.Equal(t, tt.want, ve.Errors[0].Message)
	}
}

func TestValidationError_ReasonMessages(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidValueError("id", int64(-1), "must be a positive integer")
	ve.AddInvalidRangeError("closed_at", "2024-01-08T08:00:00", "must not be before opened_at")
	ve.AddInvalidCharacterError("service", "net\x00work")

	assert.Equal(t, "3 problems: id must be a positive integer; closed_at must not be before opened_at; service contains control characters",
		ve.GetUserFriendlyMessage())
	assert.Equal(t, ErrorTypeInvalidCharacter, ve.GetFieldErrors("service")[0].Type)
}

func TestValidationError_AsAppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("service")
	ve.AddInvalidTimestampError("opened_at", "soon")

	err := ve.ErrorOrNil()
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("create ticket: %w", err)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	fields, ok := appErr.GetContext("fields")
	require.True(t, ok)
	assert.Equal(t, []string{"service", "opened_at"}, fields)

	assert.Len(t, ve.GetFieldErrors("opened_at"), 1)
	assert.Empty(t, ve.GetFieldErrors("operator"))
}
