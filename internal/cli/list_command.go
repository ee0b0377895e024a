package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/domain"
)

// ListCommand handles the ticket list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists the tickets matching params, oldest first
func (c *ListCommand) Execute(ctx context.Context, params api.FilterParams) error {
	filter, err := c.app.businessAPI.ParseFilter(params)
	if err != nil {
		return c.errorHandler.Handle("list tickets", err)
	}

	tickets, err := c.app.businessAPI.ListTickets(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list tickets", err)
	}

	if len(tickets) == 0 {
		fmt.Fprintln(c.app.out, "No tickets found")
		return nil
	}

	tw := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tOPERATOR\tOPENED\tCLOSED\tAGE")
	for _, t := range tickets {
		closed := c.app.placeholder("")
		if !t.IsOpen() {
			closed = c.app.displayTime(t.ClosedAtValue())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Service,
			c.app.placeholder(t.Operator),
			c.app.displayTime(t.OpenedAt),
			closed,
			c.age(t),
		)
	}
	return tw.Flush()
}

// age describes how long ago the ticket was opened
func (c *ListCommand) age(t *domain.ManualTicket) string {
	opened, ok := c.app.businessAPI.Calendar().ParseTimestamp(t.OpenedAt)
	if !ok {
		return c.app.placeholder("")
	}
	return humanize.RelTime(opened, timeNow(), "ago", "from now")
}
