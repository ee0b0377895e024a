package domain

import (
	"strings"
	"time"
)

// ManualTicket is a support ticket logged by hand on the ops dashboard.
// OpenedAt and ClosedAt keep the timestamp as entered; they are parsed
// only when a working duration is computed.
type ManualTicket struct {
	ID          int64     `json:"id"`
	Service     string    `json:"service"`
	Operator    string    `json:"operator"`
	Customer    string    `json:"customer"`
	Description string    `json:"description"`
	OpenedAt    string    `json:"opened_at"`
	ClosedAt    *string   `json:"closed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewManualTicket creates an open ticket for a service
func NewManualTicket(service, operator, openedAt string) ManualTicket {
	return ManualTicket{
		Service:  strings.TrimSpace(service),
		Operator: strings.TrimSpace(operator),
		OpenedAt: strings.TrimSpace(openedAt),
	}
}

// IsOpen returns true while the ticket has no closing time
func (t ManualTicket) IsOpen() bool {
	return t.ClosedAt == nil || strings.TrimSpace(*t.ClosedAt) == ""
}

// Close returns a copy of the ticket closed at the given timestamp
func (t ManualTicket) Close(at string) ManualTicket {
	t.ClosedAt = &at
	return t
}

// Reopen returns a copy of the ticket with the closing time cleared
func (t ManualTicket) Reopen() ManualTicket {
	t.ClosedAt = nil
	return t
}

// ClosedAtValue returns the closing timestamp, or "" while open
func (t ManualTicket) ClosedAtValue() string {
	if t.ClosedAt == nil {
		return ""
	}
	return *t.ClosedAt
}

// IsValid checks the fields every stored ticket must carry
func (t ManualTicket) IsValid() bool {
	return strings.TrimSpace(t.Service) != "" && strings.TrimSpace(t.OpenedAt) != ""
}

// TicketFilter narrows ticket listings and SLA reports.
// OpenedFrom is inclusive, OpenedTo is exclusive.
type TicketFilter struct {
	Service    *string
	Operator   *string
	Text       *string
	OpenedFrom *time.Time
	OpenedTo   *time.Time
	OpenOnly   bool
}

// IsEmpty reports whether the filter matches every ticket
func (f TicketFilter) IsEmpty() bool {
	return f.Service == nil && f.Operator == nil && f.Text == nil &&
		f.OpenedFrom == nil && f.OpenedTo == nil && !f.OpenOnly
}
