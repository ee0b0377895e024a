package api

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/services"
)

// FilterParams carries ticket filters as entered on the command line or in a
// query string. From and To accept a date, a timestamp or, for From only, a
// lookback shorthand such as "7d".
type FilterParams struct {
	Service  string `json:"service"`
	Operator string `json:"operator"`
	Text     string `json:"q"`
	From     string `json:"from"`
	To       string `json:"to"`
	OpenOnly bool   `json:"open"`
}

// OutOfHoursResult is the outcome of an out-of-hours check
type OutOfHoursResult struct {
	At         string `json:"at"`
	OutOfHours bool   `json:"out_of_hours"`
}

// BusinessAPI composes the ticket, reporting and calculator services for the
// CLI and the HTTP handlers
type BusinessAPI interface {
	// ========== Ticket Workflows ==========

	// CreateTicket validates and stores a new manual ticket
	CreateTicket(ctx context.Context, input services.TicketInput) (*domain.ManualTicket, error)

	// GetTicket returns a single ticket by ID
	GetTicket(ctx context.Context, id int64) (*domain.ManualTicket, error)

	// ListTickets returns the tickets matching filter, oldest first
	ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.ManualTicket, error)

	// UpdateTicket replaces the editable fields of a ticket
	UpdateTicket(ctx context.Context, id int64, input services.TicketInput) (*domain.ManualTicket, error)

	// CloseTicket closes a ticket; an empty closedAt means now
	CloseTicket(ctx context.Context, id int64, closedAt string) (*domain.ManualTicket, error)

	// ReopenTicket clears the closing time of a ticket
	ReopenTicket(ctx context.Context, id int64) (*domain.ManualTicket, error)

	// DeleteTicket removes a ticket
	DeleteTicket(ctx context.Context, id int64) error

	// ========== Reporting ==========

	// SLAReport builds the working-time report for the tickets matching filter
	SLAReport(ctx context.Context, filter domain.TicketFilter) (*services.SLAReport, error)

	// ParseFilter converts raw filter parameters into a ticket filter
	ParseFilter(params FilterParams) (domain.TicketFilter, error)

	// ========== Business Hours ==========

	// WorkingDuration computes the working time between two raw timestamps
	WorkingDuration(start, end string) *services.DurationResult

	// IsOutOfHours reports whether a raw timestamp falls outside working hours
	IsOutOfHours(at string) *OutOfHoursResult

	// Calendar returns the working calendar in use
	Calendar() *businesshours.Calendar
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	now      func() time.Time
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{
		services: container,
		now:      time.Now,
	}
}

// ========== Ticket Workflows ==========

func (b *businessAPIImpl) CreateTicket(ctx context.Context, input services.TicketInput) (*domain.ManualTicket, error) {
	return b.services.TicketService.CreateTicket(ctx, input)
}

func (b *businessAPIImpl) GetTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	return b.services.TicketService.GetTicket(ctx, id)
}

func (b *businessAPIImpl) ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.ManualTicket, error) {
	return b.services.TicketService.ListTickets(ctx, filter)
}

func (b *businessAPIImpl) UpdateTicket(ctx context.Context, id int64, input services.TicketInput) (*domain.ManualTicket, error) {
	return b.services.TicketService.UpdateTicket(ctx, id, input)
}

func (b *businessAPIImpl) CloseTicket(ctx context.Context, id int64, closedAt string) (*domain.ManualTicket, error) {
	return b.services.TicketService.CloseTicket(ctx, id, closedAt)
}

func (b *businessAPIImpl) ReopenTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	return b.services.TicketService.ReopenTicket(ctx, id)
}

func (b *businessAPIImpl) DeleteTicket(ctx context.Context, id int64) error {
	return b.services.TicketService.DeleteTicket(ctx, id)
}

// ========== Reporting ==========

func (b *businessAPIImpl) SLAReport(ctx context.Context, filter domain.TicketFilter) (*services.SLAReport, error) {
	return b.services.ReportingService.BuildSLAReport(ctx, filter)
}

func (b *businessAPIImpl) ParseFilter(params FilterParams) (domain.TicketFilter, error) {
	filter := domain.TicketFilter{OpenOnly: params.OpenOnly}

	if s := strings.TrimSpace(params.Service); s != "" {
		filter.Service = &s
	}
	if s := strings.TrimSpace(params.Operator); s != "" {
		filter.Operator = &s
	}
	if s := strings.TrimSpace(params.Text); s != "" {
		filter.Text = &s
	}

	if raw := strings.TrimSpace(params.From); raw != "" {
		from, err := b.parseBound("from", raw, false)
		if err != nil {
			return domain.TicketFilter{}, err
		}
		filter.OpenedFrom = &from
	}
	if raw := strings.TrimSpace(params.To); raw != "" {
		to, err := b.parseBound("to", raw, true)
		if err != nil {
			return domain.TicketFilter{}, err
		}
		filter.OpenedTo = &to
	}

	return filter, nil
}

// parseBound parses one end of an opened-at range. A bare date used as the
// upper bound covers that whole day.
func (b *businessAPIImpl) parseBound(field, raw string, upper bool) (time.Time, error) {
	cal := b.Calendar()

	if !upper {
		if d, err := ParseTimeShorthand(raw); err == nil {
			return b.now().In(cal.Location()).Add(-d), nil
		}
	}

	if day, err := time.ParseInLocation("2006-01-02", raw, cal.Location()); err == nil {
		if upper {
			return day.AddDate(0, 0, 1), nil
		}
		return day, nil
	}

	t, ok := cal.ParseTimestamp(raw)
	if !ok {
		return time.Time{}, errors.NewInvalidInputError(field, raw, "expected a date, a timestamp or a shorthand like 7d")
	}
	return t, nil
}

// ========== Business Hours ==========

func (b *businessAPIImpl) WorkingDuration(start, end string) *services.DurationResult {
	return b.services.CalculatorService.WorkingDuration(start, end)
}

func (b *businessAPIImpl) IsOutOfHours(at string) *OutOfHoursResult {
	return &OutOfHoursResult{
		At:         strings.TrimSpace(at),
		OutOfHours: b.services.CalculatorService.OutOfHours(at),
	}
}

func (b *businessAPIImpl) Calendar() *businesshours.Calendar {
	return b.services.CalculatorService.Calendar()
}

var shorthandPattern = regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)

// ParseTimeShorthand parses lookback shorthand like "30m", "2h", "1d", "2w", "3mo" or "1y"
func ParseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in time format: %s", shorthand)
	}

	switch matches[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "w":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "mo":
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return time.Duration(value) * 365 * 24 * time.Hour, nil
	}
}
