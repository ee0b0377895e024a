package cli

import (
	"context"
	"fmt"
)

// CloseCommand handles the ticket close command
type CloseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCloseCommand creates a new close command handler
func NewCloseCommand(app *App) *CloseCommand {
	return &CloseCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute closes a ticket at the given time, or now when at is empty
func (c *CloseCommand) Execute(ctx context.Context, rawID, at string) error {
	id, err := parseTicketID(rawID)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	ticket, err := c.app.businessAPI.CloseTicket(ctx, id, at)
	if err != nil {
		return c.errorHandler.Handle("close ticket", err)
	}

	result := c.app.businessAPI.WorkingDuration(ticket.OpenedAt, ticket.ClosedAtValue())
	fmt.Fprintf(c.app.out, "Closed ticket #%d at %s (working time %s)\n",
		ticket.ID, c.app.displayTime(ticket.ClosedAtValue()), c.app.placeholder(result.Duration))
	return nil
}
