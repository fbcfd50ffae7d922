package session

import (
	"context"
	"testing"

	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/Konsultn-Engineering/dbconsole/providers/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLiteSession(t *testing.T) *Session {
	t.Helper()
	ctx := context.Background()
	p, err := sqlite.New()
	require.NoError(t, err)

	s := New(p)
	require.NoError(t, s.Open(ctx, ":memory:"))
	t.Cleanup(func() { s.Close() })

	for _, stmt := range []string{
		`CREATE TABLE t (id INTEGER, name TEXT, x INTEGER)`,
		`INSERT INTO t (id, name, x) VALUES (1, 'a', 0), (2, 'b', 0), (3, 'c', 0)`,
	} {
		_, err := s.ExecuteWrite(ctx, stmt)
		require.NoError(t, err)
	}
	return s
}

func TestSQLite_WriteReturnsAffectedCount(t *testing.T) {
	s := openSQLiteSession(t)

	n, err := s.ExecuteWrite(context.Background(), `UPDATE t SET x=1`)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestSQLite_ReadReturnsRowsAndColumns(t *testing.T) {
	ctx := context.Background()
	s := openSQLiteSession(t)
	_, err := s.ExecuteWrite(ctx, `DELETE FROM t WHERE id = 3`)
	require.NoError(t, err)

	rows, err := s.ExecuteRead(ctx, `select id, name from t order by id`)
	require.NoError(t, err)
	rs, err := database.ReadAll(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	assert.Equal(t, [][]any{{int64(1), "a"}, {int64(2), "b"}}, rs.Rows)
}

func TestSQLite_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := openSQLiteSession(t)

	require.NoError(t, s.BeginTransaction(ctx))
	n, err := s.ExecuteWrite(ctx, `DELETE FROM t`)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	rows, err := s.ExecuteRead(ctx, `select count(*) from t`)
	require.NoError(t, err)
	rs, err := database.ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rs.Rows[0][0])

	require.NoError(t, s.RollbackTransaction(ctx))

	rows, err = s.ExecuteRead(ctx, `select count(*) from t`)
	require.NoError(t, err)
	rs, err = database.ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rs.Rows[0][0])
}

func TestSQLite_CommitKeepsWrites(t *testing.T) {
	ctx := context.Background()
	s := openSQLiteSession(t)

	require.NoError(t, s.BeginTransaction(ctx))
	_, err := s.ExecuteWrite(ctx, `INSERT INTO t (id, name, x) VALUES (4, 'd', 0)`)
	require.NoError(t, err)
	require.NoError(t, s.CommitTransaction(ctx))

	rows, err := s.ExecuteRead(ctx, `select count(*) from t`)
	require.NoError(t, err)
	rs, err := database.ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rs.Rows[0][0])
}

func TestSQLite_CloseWithActiveTransaction(t *testing.T) {
	ctx := context.Background()
	s := openSQLiteSession(t)

	require.NoError(t, s.BeginTransaction(ctx))
	_, err := s.ExecuteRead(ctx, `select * from t`)
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.Equal(t, Closed, s.State())
	assert.EqualValues(t, 1, s.Stats().Rollbacks)
}
