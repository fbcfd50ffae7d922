package database

import (
	"context"
	"database/sql"
)

// sqlRunner is satisfied by *sql.Conn and *sql.Tx.
type sqlRunner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SqlQuerier implements Querier for database/sql connections and transactions.
type SqlQuerier struct {
	runner sqlRunner
}

// NewSqlQuerier creates a new SqlQuerier.
func NewSqlQuerier(runner sqlRunner) *SqlQuerier {
	return &SqlQuerier{runner: runner}
}

// QueryContext executes a query that returns rows.
func (s *SqlQuerier) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.runner.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// ExecContext executes a statement and returns the number of affected rows.
func (s *SqlQuerier) ExecContext(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.runner.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

// Next prepares the next result row for reading.
func (s *SqlRows) Next() bool { return s.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

// Columns returns the column names.
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

// Err returns the error, if any, that was encountered during iteration.
func (s *SqlRows) Err() error { return s.rows.Err() }

// Close closes the rows iterator.
func (s *SqlRows) Close() error { return s.rows.Close() }

// Values returns the values for the current row as the driver produced them.
func (s *SqlRows) Values() ([]any, error) {
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return nil, err
	}
	return values, nil
}

// Assert that SqlQuerier implements the Querier interface.
var _ Querier = (*SqlQuerier)(nil)
