package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Ticket is the stored shape of a manual support ticket
type Ticket struct {
	ID          int64
	Service     string
	Operator    string
	Customer    string
	Description string
	OpenedAt    string
	ClosedAt    *string // NULL while the ticket is open
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchOptions contains all possible ticket search parameters.
// OpenedFrom and OpenedTo compare against the stored local ISO timestamps.
type SearchOptions struct {
	Service    *string
	Operator   *string
	Text       *string
	OpenedFrom *string
	OpenedTo   *string
	OpenOnly   bool
}

// Repository defines the persistence operations for tickets
type Repository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicket(ctx context.Context, id int64) (*Ticket, error)
	ListTickets(ctx context.Context) ([]*Ticket, error)
	SearchTickets(ctx context.Context, opts SearchOptions) ([]*Ticket, error)
	UpdateTicket(ctx context.Context, ticket *Ticket) error
	DeleteTicket(ctx context.Context, id int64) error
	Close() error
}

// Placeholder renders the n-th (1-based) bind parameter of a SQL dialect
type Placeholder func(n int) string

// QuestionMark is the SQLite placeholder style
func QuestionMark(int) string { return "?" }

// Dollar is the Postgres placeholder style
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// likeEscaper makes free text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// BuildTicketFilter turns search options into a WHERE clause (without the
// keyword) and its arguments. An empty clause means no filtering.
func BuildTicketFilter(opts SearchOptions, ph Placeholder) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return ph(len(args))
	}

	if opts.Service != nil && *opts.Service != "" {
		conditions = append(conditions, "service = "+next(*opts.Service))
	}
	if opts.Operator != nil && *opts.Operator != "" {
		conditions = append(conditions, "operator = "+next(*opts.Operator))
	}
	if opts.Text != nil && *opts.Text != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*opts.Text)) + "%"
		conditions = append(conditions, fmt.Sprintf(`(LOWER(description) LIKE %s ESCAPE '\' OR LOWER(customer) LIKE %s ESCAPE '\')`, next(pattern), next(pattern)))
	}
	if opts.OpenedFrom != nil {
		conditions = append(conditions, "opened_at >= "+next(*opts.OpenedFrom))
	}
	if opts.OpenedTo != nil {
		conditions = append(conditions, "opened_at <= "+next(*opts.OpenedTo))
	}
	if opts.OpenOnly {
		conditions = append(conditions, "closed_at IS NULL")
	}

	return strings.Join(conditions, " AND "), args
}
