package connector

import (
	"context"
	"testing"

	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type foreignConnection struct{}

func (foreignConnection) Open(context.Context) error                            { return nil }
func (foreignConnection) BeginTransaction(context.Context) (Transaction, error) { return nil, nil }
func (foreignConnection) Close() error                                          { return nil }

func openSQLite(t *testing.T) *SQLConnection {
	t.Helper()
	conn := NewSQLConnection("sqlite", ":memory:")
	require.NoError(t, conn.Open(context.Background()))
	t.Cleanup(func() { conn.Close() })

	for _, stmt := range []string{
		`CREATE TABLE t (id INTEGER, name TEXT)`,
		`INSERT INTO t (id, name) VALUES (1, 'a'), (2, 'b')`,
	} {
		cmd, err := NewSQLCommand(conn, stmt)
		require.NoError(t, err)
		_, err = cmd.Exec(context.Background())
		require.NoError(t, err)
	}
	return conn
}

func countRows(t *testing.T, conn Connection) int {
	t.Helper()
	cmd, err := NewSQLCommand(conn, `select * from t`)
	require.NoError(t, err)
	rows, err := cmd.Query(context.Background())
	require.NoError(t, err)
	rs, err := database.ReadAll(rows)
	require.NoError(t, err)
	return rs.Len()
}

func TestSQLConnection_OpenTwice(t *testing.T) {
	conn := openSQLite(t)
	assert.ErrorIs(t, conn.Open(context.Background()), ErrAlreadyOpen)
	assert.Equal(t, "sqlite", conn.Driver())
}

func TestSQLConnection_CommandBeforeOpen(t *testing.T) {
	conn := NewSQLConnection("sqlite", ":memory:")
	_, err := NewSQLCommand(conn, "select 1")
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = conn.BeginTransaction(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.NoError(t, conn.Close())
}

func TestSQLConnection_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)

	tx, err := conn.BeginTransaction(ctx)
	require.NoError(t, err)

	cmd, err := NewSQLTxCommand(conn, tx, `INSERT INTO t (id, name) VALUES (3, 'c')`)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO t (id, name) VALUES (3, 'c')`, cmd.Text())
	n, err := cmd.Exec(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 2, countRows(t, conn))

	assert.ErrorIs(t, tx.Commit(ctx), ErrTransactionDone)
	_, err = NewSQLTxCommand(conn, tx, "select 1")
	assert.ErrorIs(t, err, ErrTransactionDone)
}

func TestSQLConnection_TransactionCommit(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)

	tx, err := conn.BeginTransaction(ctx)
	require.NoError(t, err)
	cmd, err := NewSQLTxCommand(conn, tx, `DELETE FROM t WHERE id = 1`)
	require.NoError(t, err)
	_, err = cmd.Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, 1, countRows(t, conn))
}

func TestSQLConnection_ForeignObjects(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)
	other := openSQLite(t)

	_, err := NewSQLCommand(foreignConnection{}, "select 1")
	assert.ErrorIs(t, err, ErrForeignConnection)

	tx, err := other.BeginTransaction(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = NewSQLTxCommand(conn, tx, "select 1")
	assert.ErrorIs(t, err, ErrForeignTransaction)
}

func TestSQLConnection_CloseIdempotent(t *testing.T) {
	conn := openSQLite(t)
	require.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())

	_, err := NewSQLCommand(conn, "select 1")
	assert.ErrorIs(t, err, ErrNotOpen)
}
