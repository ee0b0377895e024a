package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	calendar *businesshours.Calendar
	limits   config.ValidationConfig
}

// NewValidator creates a validator with the default limits
func NewValidator(cal *businesshours.Calendar) *Validator {
	return NewValidatorWithConfig(cal, config.NewConfig().Validation)
}

// NewValidatorWithConfig creates a validator with configured limits
func NewValidatorWithConfig(cal *businesshours.Calendar, limits config.ValidationConfig) *Validator {
	return &Validator{calendar: cal, limits: limits}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength checks the trimmed length in characters, not bytes
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// HasControlCharacters reports newlines, tabs and other control runes
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) != -1
}

// ParseTimestamp parses a ticket timestamp in the business time zone
func (v *Validator) ParseTimestamp(raw string) (time.Time, bool) {
	return v.calendar.ParseTimestamp(raw)
}

// IsValidTicketID checks if a ticket ID is valid (positive)
func (v *Validator) IsValidTicketID(id int64) bool {
	return id > 0
}

// IsValidDateRange checks that start is not after end. Open ends are valid.
func (v *Validator) IsValidDateRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !start.After(*end)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// Limits returns the configured field length limits
func (v *Validator) Limits() config.ValidationConfig {
	return v.limits
}
