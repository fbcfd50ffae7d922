// Package statement decides whether statement text reads or writes and runs
// it through the matching session operation.
package statement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Konsultn-Engineering/dbconsole/database"
	dberrors "github.com/Konsultn-Engineering/dbconsole/errors"
	"github.com/gertd/go-pluralize"
)

// ErrBlank is the cause reported for empty statement text.
var ErrBlank = errors.New("statement is blank")

// Kind is the dispatch class of a statement.
type Kind int

const (
	KindWrite Kind = iota
	KindRead
)

func (k Kind) String() string {
	if k == KindRead {
		return "read"
	}
	return "write"
}

// Classify reports KindRead when sql starts with "select", ignoring leading
// whitespace and case. Everything else, including WITH ... SELECT and
// statements with RETURNING, is KindWrite.
func Classify(sql string) Kind {
	s := strings.TrimLeftFunc(sql, unicode.IsSpace)
	if len(s) >= 6 && strings.EqualFold(s[:6], "select") {
		return KindRead
	}
	return KindWrite
}

// Executor is the subset of a session that statements need.
type Executor interface {
	ExecuteRead(ctx context.Context, sql string) (database.Rows, error)
	ExecuteWrite(ctx context.Context, sql string) (int64, error)
}

// Result is the outcome of one statement. Rows is set for reads only.
type Result struct {
	Kind     Kind
	Rows     *database.ResultSet
	Affected int64
}

// Count is the number of rows read or written.
func (r *Result) Count() int64 {
	if r.Kind == KindRead && r.Rows != nil {
		return int64(r.Rows.Len())
	}
	return r.Affected
}

var plural = pluralize.NewClient()

// Summary renders a status line such as "2 records selected.".
func (r *Result) Summary() string {
	verb := "affected"
	if r.Kind == KindRead {
		verb = "selected"
	}
	n := r.Count()
	return fmt.Sprintf("%s %s.", plural.Pluralize("record", int(n), true), verb)
}

// Execute classifies sql and runs it on e. Reads are drained completely so
// the cursor is released before Execute returns.
func Execute(ctx context.Context, e Executor, sql string) (*Result, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, dberrors.Execution(sql, ErrBlank)
	}

	if Classify(sql) == KindWrite {
		n, err := e.ExecuteWrite(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindWrite, Affected: n}, nil
	}

	rows, err := e.ExecuteRead(ctx, sql)
	if err != nil {
		return nil, err
	}
	rs, err := database.ReadAll(rows)
	if err != nil {
		return nil, dberrors.Execution(sql, err)
	}
	return &Result{Kind: KindRead, Rows: rs}, nil
}
