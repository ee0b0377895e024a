package validation

import (
	"time"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/domain"
)

// TicketValidator validates manual tickets before they are stored
type TicketValidator struct {
	validator *Validator
}

// NewTicketValidator creates a ticket validator with the default limits
func NewTicketValidator(cal *businesshours.Calendar) *TicketValidator {
	return &TicketValidator{validator: NewValidator(cal)}
}

// NewTicketValidatorWithConfig creates a ticket validator with configured limits
func NewTicketValidatorWithConfig(cal *businesshours.Calendar, limits config.ValidationConfig) *TicketValidator {
	return &TicketValidator{validator: NewValidatorWithConfig(cal, limits)}
}

// ValidateTicket checks every field of a ticket and returns all problems at once
func (tv *TicketValidator) ValidateTicket(ticket domain.ManualTicket) error {
	ve := NewValidationError()
	limits := tv.validator.Limits()

	tv.checkText(ve, "service", ticket.Service, limits.ServiceMaxLength, true)
	tv.checkText(ve, "operator", ticket.Operator, limits.OperatorMaxLength, false)
	tv.checkText(ve, "customer", ticket.Customer, limits.CustomerMaxLength, false)
	if !tv.validator.IsWithinMaxLength(ticket.Description, limits.DescriptionMaxLength) {
		ve.AddInvalidLengthError("description", len(ticket.Description), 0, limits.DescriptionMaxLength)
	}

	if ticket.ID < 0 {
		ve.AddInvalidValueError("id", ticket.ID, "must be a positive integer")
	}

	opened, openedOK := tv.checkTimestamp(ve, "opened_at", ticket.OpenedAt, true)
	if !ticket.IsOpen() {
		closed, closedOK := tv.checkTimestamp(ve, "closed_at", *ticket.ClosedAt, false)
		if openedOK && closedOK && closed.Before(opened) {
			ve.AddInvalidRangeError("closed_at", *ticket.ClosedAt, "must not be before opened_at")
		}
	}

	return ve.ErrorOrNil()
}

// ValidateClosing checks a closing timestamp against an existing ticket
func (tv *TicketValidator) ValidateClosing(ticket domain.ManualTicket, closedAt string) error {
	return tv.ValidateTicket(ticket.Close(closedAt))
}

// ValidateTicketID validates a ticket ID
func (tv *TicketValidator) ValidateTicketID(id int64) error {
	if !tv.validator.IsValidTicketID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError("id", id, "must be a positive integer")
		return ve.AsAppError()
	}
	return nil
}

// ValidateFilter checks the opened-at bounds of a listing or report filter
func (tv *TicketValidator) ValidateFilter(filter domain.TicketFilter) error {
	if !tv.validator.IsValidDateRange(filter.OpenedFrom, filter.OpenedTo) {
		ve := NewValidationError()
		ve.AddInvalidRangeError("to", filter.OpenedTo, "must not be before from")
		return ve.AsAppError()
	}
	return nil
}

func (tv *TicketValidator) checkText(ve *ValidationError, field, value string, max int, required bool) {
	trimmed := tv.validator.TrimAndValidateString(value)
	if required && !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError(field)
		return
	}
	if !tv.validator.IsWithinMaxLength(trimmed, max) {
		ve.AddInvalidLengthError(field, trimmed, 0, max)
	}
	if tv.validator.HasControlCharacters(trimmed) {
		ve.AddInvalidCharacterError(field, trimmed)
	}
}

func (tv *TicketValidator) checkTimestamp(ve *ValidationError, field, raw string, required bool) (time.Time, bool) {
	if !tv.validator.IsNonEmptyString(raw) {
		if required {
			ve.AddRequiredError(field)
		}
		return time.Time{}, false
	}
	t, ok := tv.validator.ParseTimestamp(raw)
	if !ok {
		ve.AddInvalidTimestampError(field, raw)
	}
	return t, ok
}
