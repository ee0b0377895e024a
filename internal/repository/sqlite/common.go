package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"

	"ops-dashboard/internal/errors"
)

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// notFound reports a missing ticket
func notFound(id int64) error {
	return errors.NewNotFoundError("ticket", strconv.FormatInt(id, 10))
}

// expectRow fails with not found when a statement touched no row
func expectRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("read rows affected", err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// insert runs an INSERT and returns the new row ID
func insert(ctx context.Context, db execer, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewDatabaseError("insert ticket", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.NewDatabaseError("read ticket id", err)
	}
	return id, nil
}

// execOne runs a statement that must touch the ticket with the given id
func execOne(ctx context.Context, db execer, operation string, id int64, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewDatabaseError(operation, err)
	}
	return expectRow(result, id)
}

// QuerySingle runs a single-row query for the ticket with the given id
func QuerySingle[T any](ctx context.Context, db execer, query string, scan func(Scanner) (*T, error), id int64, args ...interface{}) (*T, error) {
	result, err := scan(db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseError("load ticket", err)
	}
	return result, nil
}

// QueryMultiple runs a query and scans every row
func QueryMultiple[T any](ctx context.Context, db execer, query string, scan func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("search tickets", err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, errors.NewDatabaseError("read tickets", err)
	}
	return results, nil
}
