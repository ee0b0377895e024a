package postgres

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/repository"
)

// Options configures the Postgres repository
type Options struct {
	DSN          string
	MaxConns     int32
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	// SkipMigrations leaves the schema alone, for databases migrated out of band
	SkipMigrations bool
}

// Repository implements repository.Repository on a pgx connection pool
type Repository struct {
	pool *pgxpool.Pool
	opts Options
}

var _ repository.Repository = (*Repository)(nil)

const ticketColumns = "id, service, operator, customer, description, opened_at, closed_at, created_at, updated_at"

// New migrates the schema, opens a pool and checks the connection
func New(ctx context.Context, opts Options) (*Repository, error) {
	if !opts.SkipMigrations {
		if err := Migrate(opts.DSN); err != nil {
			return nil, errors.NewDatabaseError("run migrations", err)
		}
	}

	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, errors.NewInvalidInputError("postgres_dsn", "<redacted>", err.Error())
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.NewUnavailableError("postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewUnavailableError("postgres", err)
	}

	return &Repository{pool: pool, opts: opts}, nil
}

// Close releases the pool
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// CreateTicket inserts a ticket and fills in its ID and bookkeeping timestamps
func (r *Repository) CreateTicket(ctx context.Context, ticket *repository.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO manual_tickets (service, operator, customer, description, opened_at, closed_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		ticket.Service, ticket.Operator, ticket.Customer, ticket.Description, ticket.OpenedAt, ticket.ClosedAt,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return mapError("create ticket", err)
	}
	return nil
}

// GetTicket retrieves a ticket by ID
func (r *Repository) GetTicket(ctx context.Context, id int64) (*repository.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM manual_tickets WHERE id = $1`, id)
	ticket, err := scanTicket(row)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewNotFoundError("ticket", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, mapError("get ticket", err)
	}
	return ticket, nil
}

// ListTickets retrieves all tickets, oldest first
func (r *Repository) ListTickets(ctx context.Context) ([]*repository.Ticket, error) {
	return r.SearchTickets(ctx, repository.SearchOptions{})
}

// SearchTickets retrieves the tickets matching opts, oldest first
func (r *Repository) SearchTickets(ctx context.Context, opts repository.SearchOptions) ([]*repository.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT ` + ticketColumns + ` FROM manual_tickets`
	where, args := repository.BuildTicketFilter(opts, repository.Dollar)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY opened_at ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("query tickets", err)
	}
	defer rows.Close()

	var tickets []*repository.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, mapError("scan tickets", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("query tickets", err)
	}
	return tickets, nil
}

// UpdateTicket overwrites the editable fields of a ticket
func (r *Repository) UpdateTicket(ctx context.Context, ticket *repository.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	UPDATE manual_tickets
	SET service = $1, operator = $2, customer = $3, description = $4, opened_at = $5, closed_at = $6, updated_at = now()
	WHERE id = $7
	RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		ticket.Service, ticket.Operator, ticket.Customer, ticket.Description, ticket.OpenedAt, ticket.ClosedAt, ticket.ID,
	).Scan(&ticket.UpdatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NewNotFoundError("ticket", strconv.FormatInt(ticket.ID, 10))
	}
	if err != nil {
		return mapError("update ticket", err)
	}
	return nil
}

// DeleteTicket deletes a ticket by ID
func (r *Repository) DeleteTicket(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM manual_tickets WHERE id = $1`, id)
	if err != nil {
		return mapError("delete ticket", err)
	}
	return checkAffected(tag, id)
}

// mapError classifies a driver failure by its SQLSTATE: constraint
// violations are bad input, cancelled statements are timeouts and
// connection failures mean the server is unreachable.
func mapError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return errors.NewDatabaseError(operation, err)
	}
	switch {
	case strings.HasPrefix(pgErr.Code, "23"):
		return errors.NewValidationError(pgErr.Message, err).WithContext("constraint", pgErr.ConstraintName)
	case pgErr.Code == "57014":
		return errors.NewTimeoutError(operation, err)
	case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01":
		return errors.NewUnavailableError("postgres", err)
	default:
		return errors.NewDatabaseError(operation, err)
	}
}

func checkAffected(tag pgconn.CommandTag, id int64) error {
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("ticket", strconv.FormatInt(id, 10))
	}
	return nil
}

func scanTicket(row pgx.Row) (*repository.Ticket, error) {
	ticket := &repository.Ticket{}
	err := row.Scan(
		&ticket.ID,
		&ticket.Service,
		&ticket.Operator,
		&ticket.Customer,
		&ticket.Description,
		&ticket.OpenedAt,
		&ticket.ClosedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
