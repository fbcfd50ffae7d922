package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/jackc/pgx/v5"
)

// closeTimeout bounds the graceful termination message sent on Close.
const closeTimeout = 5 * time.Second

// PgxConnection is a Connection over a single native pgx connection.
type PgxConnection struct {
	config *pgx.ConnConfig
	conn   *pgx.Conn
}

// NewPgxConnection parses connString and returns an unopened connection.
// A malformed connection string is reported here, before any dialing.
func NewPgxConnection(connString string) (*PgxConnection, error) {
	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, err
	}
	return &PgxConnection{config: cfg}, nil
}

// Config returns the parsed connection configuration.
func (p *PgxConnection) Config() *pgx.ConnConfig { return p.config }

// Open establishes the PostgreSQL connection.
func (p *PgxConnection) Open(ctx context.Context) error {
	if p.conn != nil {
		return ErrAlreadyOpen
	}
	conn, err := pgx.ConnectConfig(ctx, p.config)
	if err != nil {
		return err
	}
	p.conn = conn
	return nil
}

// BeginTransaction starts a transaction.
func (p *PgxConnection) BeginTransaction(ctx context.Context) (Transaction, error) {
	if p.conn == nil {
		return nil, ErrNotOpen
	}
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PgxTransaction{tx: tx, owner: p}, nil
}

// Close closes the connection.
func (p *PgxConnection) Close() error {
	if p.conn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := p.conn.Close(ctx)
	p.conn = nil
	return err
}

// PgxTransaction is a transaction on a PgxConnection.
type PgxTransaction struct {
	tx    pgx.Tx
	owner *PgxConnection
	done  bool
}

// Commit commits the transaction.
func (t *PgxTransaction) Commit(ctx context.Context) error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	return t.tx.Commit(ctx)
}

// Rollback aborts the transaction.
func (t *PgxTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	return t.tx.Rollback(ctx)
}

// NewPgxCommand builds a command on conn, which must be an open *PgxConnection.
func NewPgxCommand(conn Connection, text string) (Command, error) {
	p, ok := conn.(*PgxConnection)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrForeignConnection, conn)
	}
	if p.conn == nil {
		return nil, ErrNotOpen
	}
	return NewStatementCommand(database.NewPgxQuerier(p.conn), text), nil
}

// NewPgxTxCommand builds a command inside tx.
func NewPgxTxCommand(conn Connection, tx Transaction, text string) (Command, error) {
	p, ok := conn.(*PgxConnection)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrForeignConnection, conn)
	}
	t, ok := tx.(*PgxTransaction)
	if !ok || t.owner != p {
		return nil, ErrForeignTransaction
	}
	if t.done {
		return nil, ErrTransactionDone
	}
	return NewStatementCommand(database.NewPgxQuerier(t.tx), text), nil
}

var (
	_ Connection  = (*PgxConnection)(nil)
	_ Transaction = (*PgxTransaction)(nil)
)
