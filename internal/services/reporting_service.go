package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	tickets  TicketService
	calendar *businesshours.Calendar
	now      func() time.Time
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(tickets TicketService, cal *businesshours.Calendar) ReportingService {
	return &reportingServiceImpl{
		tickets:  tickets,
		calendar: cal,
		now:      time.Now,
	}
}

// RowFor computes the SLA figures of a single ticket. Open tickets and
// tickets whose timestamps cannot be used are reported as not computable.
func (r *reportingServiceImpl) RowFor(ticket *domain.ManualTicket) *SLARow {
	row := &SLARow{
		Ticket:     ticket,
		OutOfHours: r.calendar.IsOutOfHours(ticket.OpenedAt),
	}
	if ticket.IsOpen() {
		return row
	}

	start, ok := r.calendar.ParseTimestamp(ticket.OpenedAt)
	if !ok {
		return row
	}
	end, ok := r.calendar.ParseTimestamp(*ticket.ClosedAt)
	if !ok {
		return row
	}
	minutes, ok := r.calendar.WorkingMinutes(start, end)
	if !ok {
		return row
	}

	row.WorkingMinutes = minutes
	row.WorkingDuration = businesshours.FormatMinutes(minutes)
	row.Computable = true
	return row
}

// BuildSLAReport computes the SLA rows and totals for the tickets matching filter
func (r *reportingServiceImpl) BuildSLAReport(ctx context.Context, filter domain.TicketFilter) (*SLAReport, error) {
	tickets, err := r.tickets.ListTickets(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &SLAReport{
		Rows:        make([]*SLARow, 0, len(tickets)),
		Filter:      filter,
		GeneratedAt: r.now().In(r.calendar.Location()),
	}

	var total float64
	for _, ticket := range tickets {
		row := r.RowFor(ticket)
		report.Rows = append(report.Rows, row)

		report.Totals.TicketCount++
		if ticket.IsOpen() {
			report.Totals.OpenCount++
		}
		if row.OutOfHours {
			report.Totals.OutOfHoursCount++
		}
		if row.Computable {
			report.Totals.ComputableCount++
			total += row.WorkingMinutes
		}
	}

	report.Totals.TotalWorkingMinutes = total
	report.Totals.TotalWorking = businesshours.FormatMinutes(total)
	if report.Totals.ComputableCount > 0 {
		report.Totals.AverageWorking = businesshours.FormatMinutes(total / float64(report.Totals.ComputableCount))
	}

	log.Debug().
		Int("tickets", report.Totals.TicketCount).
		Int("computable", report.Totals.ComputableCount).
		Float64("working_minutes", total).
		Msg("built SLA report")

	return report, nil
}
