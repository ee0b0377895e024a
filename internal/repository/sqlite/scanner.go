package sqlite

import (
	"database/sql"
	"fmt"

	"ops-dashboard/internal/repository"
)

// Scanner is the scanning behaviour shared by sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows is the subset of sql.Rows used when scanning result sets
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const ticketColumns = "id, service, operator, customer, description, opened_at, closed_at, created_at, updated_at"

// ScanTicket scans a single ticket selected with ticketColumns
func ScanTicket(scanner Scanner) (*repository.Ticket, error) {
	ticket := &repository.Ticket{}
	var closedAt sql.NullString
	var createdAt, updatedAt string

	err := scanner.Scan(
		&ticket.ID,
		&ticket.Service,
		&ticket.Operator,
		&ticket.Customer,
		&ticket.Description,
		&ticket.OpenedAt,
		&closedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if closedAt.Valid {
		ticket.ClosedAt = &closedAt.String
	}
	if ticket.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("ticket %d created_at: %w", ticket.ID, err)
	}
	if ticket.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("ticket %d updated_at: %w", ticket.ID, err)
	}

	return ticket, nil
}

// ScanTickets scans every ticket in rows
func ScanTickets(rows Rows) ([]*repository.Ticket, error) {
	var tickets []*repository.Ticket
	for rows.Next() {
		ticket, err := ScanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
