package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Options configures a SQLite repository
type Options struct {
	Path         string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements repository.Repository on SQLite
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New opens the database at opts.Path and runs pending migrations
func New(ctx context.Context, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn(opts.Path))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if opts.Path == MemoryPath {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

func dsn(path string) string {
	if path == MemoryPath || strings.HasPrefix(path, "file:") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// CreateTicket inserts a ticket and fills in its ID and bookkeeping timestamps
func (r *SQLiteRepository) CreateTicket(ctx context.Context, ticket *repository.Ticket) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	query := `
	INSERT INTO manual_tickets (service, operator, customer, description, opened_at, closed_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := insert(ctx, r.db, query,
		ticket.Service, ticket.Operator, ticket.Customer, ticket.Description,
		ticket.OpenedAt, NullableString(ticket.ClosedAt),
		FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		return err
	}

	ticket.ID = id
	ticket.CreatedAt = now.UTC()
	ticket.UpdatedAt = now.UTC()
	return nil
}

// GetTicket retrieves a ticket by ID
func (r *SQLiteRepository) GetTicket(ctx context.Context, id int64) (*repository.Ticket, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + ticketColumns + ` FROM manual_tickets WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTicket, id, id)
}

// ListTickets retrieves all tickets, oldest first
func (r *SQLiteRepository) ListTickets(ctx context.Context) ([]*repository.Ticket, error) {
	return r.SearchTickets(ctx, repository.SearchOptions{})
}

// SearchTickets retrieves the tickets matching opts, oldest first
func (r *SQLiteRepository) SearchTickets(ctx context.Context, opts repository.SearchOptions) ([]*repository.Ticket, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + ticketColumns + ` FROM manual_tickets`
	where, args := repository.BuildTicketFilter(opts, repository.QuestionMark)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY opened_at ASC, id ASC"

	return QueryMultiple(ctx, r.db, query, ScanTickets, args...)
}

// UpdateTicket overwrites the editable fields of a ticket
func (r *SQLiteRepository) UpdateTicket(ctx context.Context, ticket *repository.Ticket) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	query := `
	UPDATE manual_tickets
	SET service = ?, operator = ?, customer = ?, description = ?, opened_at = ?, closed_at = ?, updated_at = ?
	WHERE id = ?`

	err := execOne(ctx, r.db, "update ticket", ticket.ID, query,
		ticket.Service, ticket.Operator, ticket.Customer, ticket.Description,
		ticket.OpenedAt, NullableString(ticket.ClosedAt), FormatTimeForDB(now), ticket.ID)
	if err != nil {
		return err
	}

	ticket.UpdatedAt = now.UTC()
	return nil
}

// DeleteTicket deletes a ticket by ID
func (r *SQLiteRepository) DeleteTicket(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM manual_tickets WHERE id = ?`
	return execOne(ctx, r.db, "delete ticket", id, query, id)
}
