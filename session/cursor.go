package session

import (
	"github.com/Konsultn-Engineering/dbconsole/database"
)

// cursor tracks the result set handed out by ExecuteRead so the session can
// refuse new statements until it is exhausted or closed.
type cursor struct {
	database.Rows
	release func()
	done    bool
}

func (c *cursor) Next() bool {
	if c.done {
		return false
	}
	if c.Rows.Next() {
		return true
	}
	c.finish()
	return false
}

func (c *cursor) Close() error {
	err := c.Rows.Close()
	c.finish()
	return err
}

func (c *cursor) finish() {
	if !c.done {
		c.done = true
		c.release()
	}
}
