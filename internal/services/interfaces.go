package services

import (
	"context"
	"time"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/domain"
)

// TicketInput carries the editable fields of a manual ticket
type TicketInput struct {
	Service     string  `json:"service"`
	Operator    string  `json:"operator"`
	Customer    string  `json:"customer"`
	Description string  `json:"description"`
	OpenedAt    string  `json:"opened_at"`
	ClosedAt    *string `json:"closed_at,omitempty"`
}

// SLARow is one ticket of an SLA report with its working-time figures
type SLARow struct {
	Ticket          *domain.ManualTicket `json:"ticket"`
	WorkingDuration string               `json:"working_duration"`
	WorkingMinutes  float64              `json:"working_minutes"`
	Computable      bool                 `json:"computable"`
	OutOfHours      bool                 `json:"out_of_hours"`
}

// SLATotals aggregates the rows of an SLA report
type SLATotals struct {
	TicketCount         int     `json:"ticket_count"`
	OpenCount           int     `json:"open_count"`
	ComputableCount     int     `json:"computable_count"`
	OutOfHoursCount     int     `json:"out_of_hours_count"`
	TotalWorking        string  `json:"total_working"`
	TotalWorkingMinutes float64 `json:"total_working_minutes"`
	AverageWorking      string  `json:"average_working"`
}

// SLAReport is the working-time report over a set of tickets
type SLAReport struct {
	Rows        []*SLARow           `json:"rows"`
	Totals      SLATotals           `json:"totals"`
	Filter      domain.TicketFilter `json:"-"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// DurationResult is the outcome of a single working-duration calculation.
// Duration is empty when Computable is false.
type DurationResult struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Duration   string  `json:"duration"`
	Minutes    float64 `json:"minutes"`
	Computable bool    `json:"computable"`
}

// TicketService handles the manual ticket lifecycle
type TicketService interface {
	CreateTicket(ctx context.Context, input TicketInput) (*domain.ManualTicket, error)
	GetTicket(ctx context.Context, id int64) (*domain.ManualTicket, error)
	ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.ManualTicket, error)
	UpdateTicket(ctx context.Context, id int64, input TicketInput) (*domain.ManualTicket, error)
	CloseTicket(ctx context.Context, id int64, closedAt string) (*domain.ManualTicket, error)
	ReopenTicket(ctx context.Context, id int64) (*domain.ManualTicket, error)
	DeleteTicket(ctx context.Context, id int64) error
}

// ReportingService builds SLA reports
type ReportingService interface {
	BuildSLAReport(ctx context.Context, filter domain.TicketFilter) (*SLAReport, error)
	RowFor(ticket *domain.ManualTicket) *SLARow
}

// CalculatorService exposes the business-hours calculations
type CalculatorService interface {
	WorkingDuration(start, end string) *DurationResult
	OutOfHours(at string) bool
	Calendar() *businesshours.Calendar
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TicketService     TicketService
	ReportingService  ReportingService
	CalculatorService CalculatorService
}
