package services

import (
	"context"
	"strings"
	"time"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/validation"
)

// ticketServiceImpl implements the TicketService interface
type ticketServiceImpl struct {
	repo      repository.Repository
	calendar  *businesshours.Calendar
	mapper    *domain.Mapper
	validator *validation.TicketValidator
	now       func() time.Time
}

// NewTicketService creates a new TicketService instance
func NewTicketService(repo repository.Repository, cal *businesshours.Calendar, validator *validation.TicketValidator) TicketService {
	return &ticketServiceImpl{
		repo:      repo,
		calendar:  cal,
		mapper:    domain.NewMapper(cal.FormatTimestamp),
		validator: validator,
		now:       time.Now,
	}
}

// normalize rewrites parseable timestamps into the stored local layout so
// range filters compare correctly. Call only after validation.
func (s *ticketServiceImpl) normalize(ticket domain.ManualTicket) domain.ManualTicket {
	if t, ok := s.calendar.ParseTimestamp(ticket.OpenedAt); ok {
		ticket.OpenedAt = s.calendar.FormatTimestamp(t)
	}
	if ticket.IsOpen() {
		ticket.ClosedAt = nil
	} else if t, ok := s.calendar.ParseTimestamp(*ticket.ClosedAt); ok {
		closed := s.calendar.FormatTimestamp(t)
		ticket.ClosedAt = &closed
	}
	return ticket
}

func ticketFromInput(input TicketInput) domain.ManualTicket {
	ticket := domain.NewManualTicket(input.Service, input.Operator, input.OpenedAt)
	ticket.Customer = strings.TrimSpace(input.Customer)
	ticket.Description = strings.TrimSpace(input.Description)
	if input.ClosedAt != nil {
		ticket = ticket.Close(strings.TrimSpace(*input.ClosedAt))
	}
	return ticket
}

// CreateTicket validates and stores a new ticket
func (s *ticketServiceImpl) CreateTicket(ctx context.Context, input TicketInput) (*domain.ManualTicket, error) {
	ticket := ticketFromInput(input)
	if err := s.validator.ValidateTicket(ticket); err != nil {
		return nil, err
	}

	stored := s.mapper.Ticket.ToRepository(s.normalize(ticket))
	if err := s.repo.CreateTicket(ctx, stored); err != nil {
		return nil, err
	}

	created := s.mapper.Ticket.FromRepository(stored)
	return &created, nil
}

// GetTicket retrieves a ticket by its ID
func (s *ticketServiceImpl) GetTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	if err := s.validator.ValidateTicketID(id); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket := s.mapper.Ticket.FromRepository(stored)
	return &ticket, nil
}

// ListTickets returns the tickets matching filter, oldest first
func (s *ticketServiceImpl) ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.ManualTicket, error) {
	if err := s.validator.ValidateFilter(filter); err != nil {
		return nil, err
	}

	stored, err := s.repo.SearchTickets(ctx, s.mapper.Filter.ToRepository(filter))
	if err != nil {
		return nil, err
	}

	tickets := make([]*domain.ManualTicket, len(stored))
	for i, t := range stored {
		ticket := s.mapper.Ticket.FromRepository(t)
		tickets[i] = &ticket
	}
	return tickets, nil
}

// UpdateTicket replaces the editable fields of an existing ticket
func (s *ticketServiceImpl) UpdateTicket(ctx context.Context, id int64, input TicketInput) (*domain.ManualTicket, error) {
	existing, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket := ticketFromInput(input)
	ticket.ID = existing.ID
	ticket.CreatedAt = existing.CreatedAt
	return s.save(ctx, ticket)
}

// CloseTicket sets the closing time of a ticket. An empty closedAt closes
// the ticket now, in the business time zone.
func (s *ticketServiceImpl) CloseTicket(ctx context.Context, id int64, closedAt string) (*domain.ManualTicket, error) {
	existing, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	closedAt = strings.TrimSpace(closedAt)
	if closedAt == "" {
		closedAt = s.calendar.FormatTimestamp(s.now())
	}
	return s.save(ctx, existing.Close(closedAt))
}

// ReopenTicket clears the closing time of a ticket
func (s *ticketServiceImpl) ReopenTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	existing, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, existing.Reopen())
}

// DeleteTicket removes a ticket
func (s *ticketServiceImpl) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.validator.ValidateTicketID(id); err != nil {
		return err
	}
	return s.repo.DeleteTicket(ctx, id)
}

func (s *ticketServiceImpl) save(ctx context.Context, ticket domain.ManualTicket) (*domain.ManualTicket, error) {
	if err := s.validator.ValidateTicket(ticket); err != nil {
		return nil, err
	}

	stored := s.mapper.Ticket.ToRepository(s.normalize(ticket))
	if err := s.repo.UpdateTicket(ctx, stored); err != nil {
		return nil, err
	}

	updated := s.mapper.Ticket.FromRepository(stored)
	return &updated, nil
}
