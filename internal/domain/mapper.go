package domain

import (
	"time"

	"ops-dashboard/internal/repository"
)

// TicketMapper converts tickets between the domain and repository models
type TicketMapper struct{}

// NewTicketMapper creates a new TicketMapper instance.
func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

// ToRepository converts a domain ticket to its stored shape
func (m *TicketMapper) ToRepository(t ManualTicket) *repository.Ticket {
	return &repository.Ticket{
		ID:          t.ID,
		Service:     t.Service,
		Operator:    t.Operator,
		Customer:    t.Customer,
		Description: t.Description,
		OpenedAt:    t.OpenedAt,
		ClosedAt:    t.ClosedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromRepository converts a stored ticket to the domain model
func (m *TicketMapper) FromRepository(t *repository.Ticket) ManualTicket {
	return ManualTicket{
		ID:          t.ID,
		Service:     t.Service,
		Operator:    t.Operator,
		Customer:    t.Customer,
		Description: t.Description,
		OpenedAt:    t.OpenedAt,
		ClosedAt:    t.ClosedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromRepositorySlice converts stored tickets to domain tickets
func (m *TicketMapper) FromRepositorySlice(tickets []*repository.Ticket) []ManualTicket {
	out := make([]ManualTicket, len(tickets))
	for i, t := range tickets {
		out[i] = m.FromRepository(t)
	}
	return out
}

// FilterMapper converts ticket filters into repository search options
type FilterMapper struct {
	format func(time.Time) string
}

// NewFilterMapper creates a FilterMapper that renders time bounds with format,
// which must produce the same layout the tickets are stored in.
func NewFilterMapper(format func(time.Time) string) *FilterMapper {
	return &FilterMapper{format: format}
}

// ToRepository converts a filter. The exclusive upper bound is turned into
// the inclusive bound one second earlier, the resolution of stored timestamps.
func (m *FilterMapper) ToRepository(f TicketFilter) repository.SearchOptions {
	opts := repository.SearchOptions{
		Service:  f.Service,
		Operator: f.Operator,
		Text:     f.Text,
		OpenOnly: f.OpenOnly,
	}
	if f.OpenedFrom != nil {
		from := m.format(*f.OpenedFrom)
		opts.OpenedFrom = &from
	}
	if f.OpenedTo != nil {
		to := m.format(f.OpenedTo.Add(-time.Second))
		opts.OpenedTo = &to
	}
	return opts
}

// Mapper groups the domain mappers
type Mapper struct {
	Ticket *TicketMapper
	Filter *FilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper(format func(time.Time) string) *Mapper {
	return &Mapper{
		Ticket: NewTicketMapper(),
		Filter: NewFilterMapper(format),
	}
}
