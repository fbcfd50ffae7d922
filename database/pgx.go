package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRunner is satisfied by *pgx.Conn and pgx.Tx.
type pgxRunner interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PgxQuerier implements Querier for a native pgx connection or transaction.
type PgxQuerier struct {
	runner pgxRunner
}

// NewPgxQuerier creates a new PgxQuerier.
func NewPgxQuerier(runner pgxRunner) *PgxQuerier {
	return &PgxQuerier{runner: runner}
}

// QueryContext executes a query that returns rows.
func (p *PgxQuerier) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := p.runner.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &PgxRows{rows: rows}, nil
}

// ExecContext executes a statement and returns the number of affected rows.
func (p *PgxQuerier) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := p.runner.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PgxRows implements Rows for pgx.Rows.
type PgxRows struct {
	rows              pgx.Rows
	fieldDescriptions []pgconn.FieldDescription
}

// Next prepares the next result row for reading.
func (p *PgxRows) Next() bool { return p.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (p *PgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }

// Err returns the error, if any, that was encountered during iteration.
func (p *PgxRows) Err() error { return p.rows.Err() }

// Close closes the rows iterator.
func (p *PgxRows) Close() error {
	p.rows.Close()
	return p.rows.Err()
}

// Columns returns the column names.
func (p *PgxRows) Columns() ([]string, error) {
	if p.fieldDescriptions == nil {
		p.fieldDescriptions = p.rows.FieldDescriptions()
	}
	columns := make([]string, len(p.fieldDescriptions))
	for i, fd := range p.fieldDescriptions {
		columns[i] = fd.Name
	}
	return columns, nil
}

// Values returns the values for the current row.
func (p *PgxRows) Values() ([]any, error) {
	return p.rows.Values()
}

// Assert that PgxQuerier implements the Querier interface.
var _ Querier = (*PgxQuerier)(nil)
