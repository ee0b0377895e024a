package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/services"
)

// Report output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// ReportCommand handles the report command
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute builds the SLA report for params and writes it in format.
// An empty format uses the configured default.
func (c *ReportCommand) Execute(ctx context.Context, params api.FilterParams, format string) error {
	if format == "" {
		format = c.app.config.Display.ReportDefaultFormat
	}
	switch format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("format", format, "must be table, csv or json"))
	}

	filter, err := c.app.businessAPI.ParseFilter(params)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	report, err := c.app.businessAPI.SLAReport(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}
	for _, row := range report.Rows {
		if !row.Computable {
			row.WorkingDuration = c.app.config.Display.Placeholder
		}
	}

	switch format {
	case FormatCSV:
		return c.writeCSV(report)
	case FormatJSON:
		return c.writeJSON(report)
	default:
		return c.writeTable(report)
	}
}

func (c *ReportCommand) writeTable(report *services.SLAReport) error {
	if len(report.Rows) == 0 {
		fmt.Fprintln(c.app.out, "No tickets found")
		return nil
	}

	tw := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tOPERATOR\tOPENED\tCLOSED\tWORKING\tOUT OF HOURS")
	for _, row := range report.Rows {
		t := row.Ticket
		closed := c.app.placeholder("")
		if !t.IsOpen() {
			closed = c.app.displayTime(t.ClosedAtValue())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Service,
			c.app.placeholder(t.Operator),
			c.app.displayTime(t.OpenedAt),
			closed,
			row.WorkingDuration,
			yesNo(row.OutOfHours),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	totals := report.Totals
	fmt.Fprintln(c.app.out)
	fmt.Fprintf(c.app.out, "Tickets: %s  Open: %s  Computable: %s  Out of hours: %s\n",
		humanize.Comma(int64(totals.TicketCount)),
		humanize.Comma(int64(totals.OpenCount)),
		humanize.Comma(int64(totals.ComputableCount)),
		humanize.Comma(int64(totals.OutOfHoursCount)),
	)
	fmt.Fprintf(c.app.out, "Total working time: %s (%s minutes)  Average: %s\n",
		totals.TotalWorking,
		humanize.Comma(int64(totals.TotalWorkingMinutes+0.5)),
		c.app.placeholder(totals.AverageWorking),
	)
	return nil
}

func (c *ReportCommand) writeCSV(report *services.SLAReport) error {
	w := csv.NewWriter(c.app.out)
	if err := w.Write([]string{
		"id", "service", "operator", "customer", "opened_at", "closed_at",
		"working_duration", "working_minutes", "out_of_hours",
	}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Rows {
		t := row.Ticket
		minutes := ""
		if row.Computable {
			minutes = strconv.FormatFloat(row.WorkingMinutes, 'f', 0, 64)
		}
		if err := w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Service,
			t.Operator,
			t.Customer,
			t.OpenedAt,
			t.ClosedAtValue(),
			row.WorkingDuration,
			minutes,
			strconv.FormatBool(row.OutOfHours),
		}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func (c *ReportCommand) writeJSON(report *services.SLAReport) error {
	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
