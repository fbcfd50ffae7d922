package sqlite

import (
	"context"
	"testing"

	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p, err := New()
	require.NoError(t, err)

	conn, err := p.OpenConnection(":memory:")
	require.NoError(t, err)
	require.NoError(t, conn.Open(ctx))
	defer conn.Close()

	for _, stmt := range []string{
		`CREATE TABLE t (id INTEGER, name TEXT)`,
		`INSERT INTO t VALUES (1, 'a'), (2, 'b')`,
	} {
		cmd, err := p.CreateCommand(conn, stmt)
		require.NoError(t, err)
		_, err = cmd.Exec(ctx)
		require.NoError(t, err)
	}

	tx, err := conn.BeginTransaction(ctx)
	require.NoError(t, err)
	cmd, err := p.CreateTxCommand(conn, tx, `UPDATE t SET name = 'z'`)
	require.NoError(t, err)
	n, err := cmd.Exec(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, tx.Rollback(ctx))

	cmd, err = p.CreateCommand(conn, `select name from t order by id`)
	require.NoError(t, err)
	rows, err := cmd.Query(ctx)
	require.NoError(t, err)
	rs, err := database.ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"a"}, {"b"}}, rs.Rows)
}

func TestOpenConnection_Empty(t *testing.T) {
	p, _ := New()
	_, err := p.OpenConnection("  ")
	assert.ErrorIs(t, err, ErrEmptyPath)
}
