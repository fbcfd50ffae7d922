package connector

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/dbconsole/database"
)

var (
	// ErrTransactionsUnsupported is returned by connections that cannot begin
	// a transaction.
	ErrTransactionsUnsupported = errors.New("connection does not support transactions")
	// ErrNotOpen is returned when a connection is used before Open or after Close.
	ErrNotOpen = errors.New("connection is not open")
	// ErrAlreadyOpen is returned when Open is called twice.
	ErrAlreadyOpen = errors.New("connection is already open")
	// ErrForeignConnection is returned when a provider receives a connection
	// it did not create.
	ErrForeignConnection = errors.New("connection was not created by this provider")
	// ErrForeignTransaction is returned when a transaction does not belong to
	// the connection it is used with.
	ErrForeignTransaction = errors.New("transaction does not belong to this connection")
	// ErrTransactionDone is returned when a committed or rolled back
	// transaction is used again.
	ErrTransactionDone = errors.New("transaction has already been committed or rolled back")
)

// Connection is one vendor connection. It is created unopened by
// Provider.OpenConnection.
type Connection interface {
	Open(ctx context.Context) error
	BeginTransaction(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction is a transaction on exactly one Connection.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Command is a single statement bound to a connection or transaction. It is
// built per execution and discarded afterwards.
type Command interface {
	Text() string
	Query(ctx context.Context) (database.Rows, error)
	Exec(ctx context.Context) (int64, error)
}
