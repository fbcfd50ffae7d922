package session

import "time"

// Stats counts the work done through one session.
type Stats struct {
	OpenedAt     time.Time
	Reads        int64
	Writes       int64
	RowsAffected int64
	Commits      int64
	Rollbacks    int64
	Failures     int64
}
