package connector

import (
	"context"

	"github.com/Konsultn-Engineering/dbconsole/database"
)

// StatementCommand runs its text against a database.Querier bound to either a
// connection or a transaction.
type StatementCommand struct {
	querier database.Querier
	text    string
}

// NewStatementCommand binds text to q.
func NewStatementCommand(q database.Querier, text string) *StatementCommand {
	return &StatementCommand{querier: q, text: text}
}

// Text returns the statement text unmodified.
func (c *StatementCommand) Text() string { return c.text }

// Query executes the statement as a query.
func (c *StatementCommand) Query(ctx context.Context) (database.Rows, error) {
	return c.querier.QueryContext(ctx, c.text)
}

// Exec executes the statement and returns the affected row count.
func (c *StatementCommand) Exec(ctx context.Context) (int64, error) {
	return c.querier.ExecContext(ctx, c.text)
}

var _ Command = (*StatementCommand)(nil)
