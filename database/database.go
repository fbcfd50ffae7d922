package database

import (
	"context"
)

// Querier runs statement text against one connection or transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (int64, error)
}

// Rows is a forward-only, single-pass cursor over a result set. The caller
// owns it and must drain or Close it to release connection-side resources.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Values() ([]any, error)
	Err() error
	Close() error
}
