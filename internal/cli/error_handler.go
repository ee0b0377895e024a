package cli

import (
	"fmt"

	"ops-dashboard/internal/errors"
)

// ErrorHandler turns service errors into messages for the terminal
type ErrorHandler struct{}

// commandError carries a terminal message while keeping the cause reachable
// through errors.As
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message of err with the failed operation, as in
// "failed to close ticket: ticket not found: 7". Errors that are not app
// errors stay wrapped.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return &commandError{msg: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err: err}
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple returns the user message of err without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return &commandError{msg: errors.GetUserMessage(err), err: err}
	}
	return err
}

// Hint suggests what to try next after err, or "" when nothing useful applies
func Hint(err error) string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return ""
	}
	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		return "run 'ops ticket list' to see existing ticket IDs"
	case errors.ErrorTypeTimeout:
		return "raise --app-timeout or --db-query-timeout"
	case errors.ErrorTypeDatabase, errors.ErrorTypeUnavailable:
		return "check --db-driver and the database settings; -v shows the cause"
	default:
		return ""
	}
}
