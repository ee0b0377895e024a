package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// DeleteCommand handles the ticket delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes a ticket after asking for confirmation, unless yes is set
func (c *DeleteCommand) Execute(ctx context.Context, rawID string, yes bool) error {
	id, err := parseTicketID(rawID)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	ticket, err := c.app.businessAPI.GetTicket(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete ticket", err)
	}

	if !yes {
		fmt.Fprintf(c.app.out, "Delete ticket #%d (%s, opened %s)? [y/N]: ",
			ticket.ID, ticket.Service, c.app.displayTime(ticket.OpenedAt))
		answer, _ := bufio.NewReader(c.app.in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(c.app.out, "Delete cancelled.")
			return nil
		}
	}

	if err := c.app.businessAPI.DeleteTicket(ctx, id); err != nil {
		return c.errorHandler.Handle("delete ticket", err)
	}

	fmt.Fprintf(c.app.out, "Deleted ticket #%d\n", id)
	return nil
}
