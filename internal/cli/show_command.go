package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ops-dashboard/internal/errors"
)

// ShowCommand handles the ticket show command
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints one ticket with its working-time figures
func (c *ShowCommand) Execute(ctx context.Context, rawID string) error {
	id, err := parseTicketID(rawID)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	ticket, err := c.app.businessAPI.GetTicket(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("show ticket", err)
	}

	out := c.app.out
	fmt.Fprintf(out, "Ticket #%d\n", ticket.ID)
	fmt.Fprintf(out, "  Service:      %s\n", ticket.Service)
	fmt.Fprintf(out, "  Operator:     %s\n", c.app.placeholder(ticket.Operator))
	fmt.Fprintf(out, "  Customer:     %s\n", c.app.placeholder(ticket.Customer))
	fmt.Fprintf(out, "  Description:  %s\n", c.app.placeholder(ticket.Description))
	fmt.Fprintf(out, "  Opened:       %s\n", c.app.displayTime(ticket.OpenedAt))

	ooh := c.app.businessAPI.IsOutOfHours(ticket.OpenedAt)
	fmt.Fprintf(out, "  Out of hours: %s\n", yesNo(ooh.OutOfHours))

	if ticket.IsOpen() {
		fmt.Fprintf(out, "  Closed:       %s\n", c.app.placeholder(""))
		fmt.Fprintf(out, "  Working time: %s\n", c.app.placeholder(""))
		return nil
	}

	result := c.app.businessAPI.WorkingDuration(ticket.OpenedAt, ticket.ClosedAtValue())
	fmt.Fprintf(out, "  Closed:       %s\n", c.app.displayTime(ticket.ClosedAtValue()))
	fmt.Fprintf(out, "  Working time: %s\n", c.app.placeholder(result.Duration))
	return nil
}

func parseTicketID(raw string) (int64, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", raw, "must be a positive ticket number")
	}
	return id, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
