package database

import (
	"errors"
	"fmt"
)

// ResultSet is a fully drained cursor.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int { return len(r.Rows) }

// ReadAll drains rows into a ResultSet and always closes the cursor.
func ReadAll(rows Rows) (rs *ResultSet, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			rs, err = nil, fmt.Errorf("close rows: %w", cerr)
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	rs = &ResultSet{Columns: cols}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rs.Rows)+1, err)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// SliceRows is an in-memory Rows over pre-materialized values.
type SliceRows struct {
	columns []string
	rows    [][]any
	pos     int
	closed  bool
}

// NewSliceRows returns a cursor over rows. Each row must have one value per
// column.
func NewSliceRows(columns []string, rows [][]any) *SliceRows {
	return &SliceRows{columns: columns, rows: rows, pos: -1}
}

// Next prepares the next result row for reading.
func (s *SliceRows) Next() bool {
	if s.closed || s.pos+1 >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

// Scan copies the current row into dest, which must be *any or pointers of
// the exact value types.
func (s *SliceRows) Scan(dest ...any) error {
	row, err := s.current()
	if err != nil {
		return err
	}
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *any:
			*p = row[i]
		case *string:
			v, ok := row[i].(string)
			if !ok {
				return fmt.Errorf("column %d: cannot scan %T into *string", i, row[i])
			}
			*p = v
		case *int64:
			v, ok := row[i].(int64)
			if !ok {
				return fmt.Errorf("column %d: cannot scan %T into *int64", i, row[i])
			}
			*p = v
		default:
			return fmt.Errorf("column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}

// Columns returns the column names.
func (s *SliceRows) Columns() ([]string, error) { return s.columns, nil }

// Values returns a copy of the current row.
func (s *SliceRows) Values() ([]any, error) {
	row, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]any(nil), row...), nil
}

// Err always returns nil.
func (s *SliceRows) Err() error { return nil }

// Close marks the cursor as exhausted.
func (s *SliceRows) Close() error {
	s.closed = true
	return nil
}

func (s *SliceRows) current() ([]any, error) {
	if s.closed {
		return nil, errors.New("rows are closed")
	}
	if s.pos < 0 || s.pos >= len(s.rows) {
		return nil, errors.New("no current row")
	}
	return s.rows[s.pos], nil
}
