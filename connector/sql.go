package connector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/hashicorp/go-multierror"
)

// SQLConnection is a Connection over a database/sql driver. It pins exactly
// one driver connection; there is no pooling.
type SQLConnection struct {
	driver string
	dsn    string
	db     *sql.DB
	conn   *sql.Conn
}

// NewSQLConnection returns an unopened connection for the named
// database/sql driver.
func NewSQLConnection(driver, dsn string) *SQLConnection {
	return &SQLConnection{driver: driver, dsn: dsn}
}

// Driver returns the database/sql driver name.
func (c *SQLConnection) Driver() string { return c.driver }

// Open dials the database and verifies the connection.
func (c *SQLConnection) Open(ctx context.Context) error {
	if c.db != nil {
		return ErrAlreadyOpen
	}

	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return err
	}

	c.db = db
	c.conn = conn
	return nil
}

// BeginTransaction starts a transaction on the pinned connection.
func (c *SQLConnection) BeginTransaction(ctx context.Context) (Transaction, error) {
	if c.conn == nil {
		return nil, ErrNotOpen
	}
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SQLTransaction{tx: tx, owner: c}, nil
}

// Close releases the pinned connection and the handle. Closing an unopened
// connection is a no-op.
func (c *SQLConnection) Close() error {
	if c.db == nil {
		return nil
	}

	var result *multierror.Error
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := c.db.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	c.conn = nil
	c.db = nil
	return result.ErrorOrNil()
}

// SQLTransaction is a transaction on an SQLConnection.
type SQLTransaction struct {
	tx    *sql.Tx
	owner *SQLConnection
	done  bool
}

// Commit commits the transaction.
func (t *SQLTransaction) Commit(_ context.Context) error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *SQLTransaction) Rollback(_ context.Context) error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	return t.tx.Rollback()
}

// NewSQLCommand builds a command on conn, which must be an open
// *SQLConnection. Providers built on database/sql delegate CreateCommand here.
func NewSQLCommand(conn Connection, text string) (Command, error) {
	c, ok := conn.(*SQLConnection)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrForeignConnection, conn)
	}
	if c.conn == nil {
		return nil, ErrNotOpen
	}
	return NewStatementCommand(database.NewSqlQuerier(c.conn), text), nil
}

// NewSQLTxCommand builds a command inside tx. Providers built on database/sql
// delegate CreateTxCommand here.
func NewSQLTxCommand(conn Connection, tx Transaction, text string) (Command, error) {
	c, ok := conn.(*SQLConnection)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrForeignConnection, conn)
	}
	t, ok := tx.(*SQLTransaction)
	if !ok || t.owner != c {
		return nil, ErrForeignTransaction
	}
	if t.done {
		return nil, ErrTransactionDone
	}
	return NewStatementCommand(database.NewSqlQuerier(t.tx), text), nil
}

var (
	_ Connection  = (*SQLConnection)(nil)
	_ Transaction = (*SQLTransaction)(nil)
)
