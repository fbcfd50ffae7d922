package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openConn(t *testing.T) *sql.Conn {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.ExecContext(context.Background(), `CREATE TABLE t (id INTEGER, name TEXT)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(context.Background(), `INSERT INTO t (id, name) VALUES (1, 'a'), (2, 'b')`)
	require.NoError(t, err)
	return conn
}

func TestSqlQuerier_QueryAndReadAll(t *testing.T) {
	ctx := context.Background()
	q := NewSqlQuerier(openConn(t))

	rows, err := q.QueryContext(ctx, `select * from t order by id`)
	require.NoError(t, err)

	rs, err := ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, []any{int64(1), "a"}, rs.Rows[0])
	assert.Equal(t, []any{int64(2), "b"}, rs.Rows[1])
}

func TestSqlQuerier_Exec(t *testing.T) {
	ctx := context.Background()
	q := NewSqlQuerier(openConn(t))

	n, err := q.ExecContext(ctx, `UPDATE t SET name = 'z'`)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = q.ExecContext(ctx, `UPDATE missing SET x = 1`)
	assert.Error(t, err)
}

func TestSqlQuerier_Transaction(t *testing.T) {
	ctx := context.Background()
	conn := openConn(t)

	tx, err := conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	n, err := NewSqlQuerier(tx).ExecContext(ctx, `DELETE FROM t`)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, tx.Rollback())

	rows, err := NewSqlQuerier(conn).QueryContext(ctx, `select count(*) from t`)
	require.NoError(t, err)
	rs, err := ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rs.Rows[0][0])
}

func TestSqlRows_ScanAndValues(t *testing.T) {
	ctx := context.Background()
	rows, err := NewSqlQuerier(openConn(t)).QueryContext(ctx, `select id, name from t where id = 2`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var id int64
	var name string
	require.NoError(t, rows.Scan(&id, &name))
	assert.Equal(t, int64(2), id)
	assert.Equal(t, "b", name)
	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestReadAll_EmptyResult(t *testing.T) {
	rows := NewSliceRows([]string{"a", "b", "c"}, nil)
	rs, err := ReadAll(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rs.Columns)
	assert.Equal(t, 0, rs.Len())
	assert.True(t, rows.closed)
}

func TestSliceRows(t *testing.T) {
	rows := NewSliceRows([]string{"id", "name"}, [][]any{{int64(1), "a"}, {int64(2), "b"}})

	_, err := rows.Values()
	assert.Error(t, err, "no current row before Next")

	require.True(t, rows.Next())
	var v any
	var s string
	require.NoError(t, rows.Scan(&v, &s))
	assert.Equal(t, int64(1), v)
	assert.Equal(t, "a", s)
	assert.Error(t, rows.Scan(&v))

	require.True(t, rows.Next())
	vals, err := rows.Values()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), "b"}, vals)

	assert.False(t, rows.Next())
	require.NoError(t, rows.Close())
	assert.False(t, rows.Next())
}
