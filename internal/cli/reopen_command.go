package cli

import (
	"context"
	"fmt"
)

// ReopenCommand handles the ticket reopen command
type ReopenCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewReopenCommand creates a new reopen command handler
func NewReopenCommand(app *App) *ReopenCommand {
	return &ReopenCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute clears the closing time of a ticket
func (c *ReopenCommand) Execute(ctx context.Context, rawID string) error {
	id, err := parseTicketID(rawID)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	ticket, err := c.app.businessAPI.ReopenTicket(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("reopen ticket", err)
	}

	fmt.Fprintf(c.app.out, "Reopened ticket #%d (%s)\n", ticket.ID, ticket.Service)
	return nil
}
