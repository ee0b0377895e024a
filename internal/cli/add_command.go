package cli

import (
	"context"
	"fmt"
	"strings"

	"ops-dashboard/internal/services"
)

// AddOptions holds the fields of a new ticket as given on the command line
type AddOptions struct {
	Service     string
	Operator    string
	Customer    string
	Description string
	OpenedAt    string
	ClosedAt    string
}

// AddCommand handles the ticket add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the add command. An empty OpenedAt means now.
func (c *AddCommand) Execute(ctx context.Context, opts AddOptions) error {
	input := services.TicketInput{
		Service:     opts.Service,
		Operator:    opts.Operator,
		Customer:    opts.Customer,
		Description: opts.Description,
		OpenedAt:    opts.OpenedAt,
	}
	if strings.TrimSpace(input.OpenedAt) == "" {
		input.OpenedAt = c.app.businessAPI.Calendar().FormatTimestamp(timeNow())
	}
	if strings.TrimSpace(opts.ClosedAt) != "" {
		input.ClosedAt = &opts.ClosedAt
	}

	ticket, err := c.app.businessAPI.CreateTicket(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("create ticket", err)
	}

	fmt.Fprintf(c.app.out, "Created ticket #%d for %s, opened %s\n",
		ticket.ID, ticket.Service, c.app.displayTime(ticket.OpenedAt))
	if !ticket.IsOpen() {
		fmt.Fprintf(c.app.out, "Closed %s\n", c.app.displayTime(ticket.ClosedAtValue()))
	}
	return nil
}
