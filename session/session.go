// Package session drives one provider connection through its lifecycle and
// routes every statement through the active transaction, if any.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/database"
	dberrors "github.com/Konsultn-Engineering/dbconsole/errors"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	"github.com/Konsultn-Engineering/dbconsole/utils"
	"github.com/google/uuid"
)

var errNilConnection = errors.New("provider returned a nil connection")

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session owns one connection and at most one transaction on it. A session
// is single-use and must not be shared between goroutines.
type Session struct {
	id       string
	provider connector.Provider
	conn     connector.Connection
	tx       connector.Transaction
	state    State
	used     bool
	cursor   *cursor
	stats    Stats
	log      *logger.Logger
}

// New creates a closed session over provider.
func New(provider connector.Provider, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		provider: provider,
		state:    Closed,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("session").WithFields(map[string]interface{}{
		"session_id": s.id,
		"provider":   connector.ProviderName(provider),
	})
	return s
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) State() State                 { return s.state }
func (s *Session) Provider() connector.Provider { return s.provider }
func (s *Session) Stats() Stats                 { return s.stats }

// Open creates and opens the connection. A failed open leaves the session
// closed and unusable.
func (s *Session) Open(ctx context.Context, connString string) error {
	if s.used {
		return dberrors.InvalidState("open", s.state.String())
	}
	s.used = true

	conn, err := s.provider.OpenConnection(connString)
	if err != nil {
		s.stats.Failures++
		return dberrors.Connection("open", err)
	}
	if conn == nil {
		s.stats.Failures++
		return dberrors.Connection("open", errNilConnection)
	}

	if err := conn.Open(ctx); err != nil {
		s.stats.Failures++
		if cerr := conn.Close(); cerr != nil {
			s.log.Warn("close after failed open", map[string]interface{}{"error": cerr})
		}
		return dberrors.Connection("open", err)
	}

	s.conn = conn
	s.state = Open
	s.stats.OpenedAt = time.Now()
	s.log.Info("session opened")
	return nil
}

// BeginTransaction starts a transaction. Later statements run inside it
// until it is committed or rolled back.
func (s *Session) BeginTransaction(ctx context.Context) error {
	if s.state != Open {
		return dberrors.InvalidState("begin", s.state.String())
	}
	if err := s.checkCursor("begin"); err != nil {
		return err
	}

	tx, err := s.conn.BeginTransaction(ctx)
	if err != nil {
		s.stats.Failures++
		return dberrors.Transaction("begin", err)
	}
	if tx == nil {
		s.stats.Failures++
		return dberrors.Transaction("begin", connector.ErrTransactionsUnsupported)
	}

	s.tx = tx
	s.state = InTransaction
	s.log.Debug("transaction started")
	return nil
}

// CommitTransaction commits the active transaction. On failure the session
// stays in transaction and its outcome is unknown; close and reopen.
func (s *Session) CommitTransaction(ctx context.Context) error {
	if s.state != InTransaction {
		return dberrors.InvalidState("commit", s.state.String())
	}
	if err := s.checkCursor("commit"); err != nil {
		return err
	}
	if err := s.tx.Commit(ctx); err != nil {
		s.stats.Failures++
		return dberrors.Transaction("commit", err)
	}
	s.endTransaction()
	s.stats.Commits++
	s.log.Debug("transaction committed")
	return nil
}

// RollbackTransaction aborts the active transaction. Failure handling
// matches CommitTransaction.
func (s *Session) RollbackTransaction(ctx context.Context) error {
	if s.state != InTransaction {
		return dberrors.InvalidState("rollback", s.state.String())
	}
	if err := s.checkCursor("rollback"); err != nil {
		return err
	}
	if err := s.tx.Rollback(ctx); err != nil {
		s.stats.Failures++
		return dberrors.Transaction("rollback", err)
	}
	s.endTransaction()
	s.stats.Rollbacks++
	s.log.Debug("transaction rolled back")
	return nil
}

// ExecuteRead runs a row-returning statement. The caller must drain or close
// the returned cursor before running anything else on this session.
func (s *Session) ExecuteRead(ctx context.Context, sql string) (database.Rows, error) {
	cmd, err := s.prepare("execute_read", sql)
	if err != nil {
		return nil, err
	}

	rows, err := cmd.Query(ctx)
	if err != nil {
		s.stats.Failures++
		return nil, dberrors.Execution(sql, err)
	}

	s.stats.Reads++
	c := &cursor{Rows: rows}
	c.release = func() {
		if s.cursor == c {
			s.cursor = nil
		}
	}
	s.cursor = c
	return c, nil
}

// ExecuteWrite runs a statement and returns the number of affected records.
func (s *Session) ExecuteWrite(ctx context.Context, sql string) (int64, error) {
	cmd, err := s.prepare("execute_write", sql)
	if err != nil {
		return 0, err
	}

	n, err := cmd.Exec(ctx)
	if err != nil {
		s.stats.Failures++
		return 0, dberrors.Execution(sql, err)
	}

	s.stats.Writes++
	s.stats.RowsAffected += n
	return n, nil
}

// Close releases everything the session holds and always leaves it Closed.
// An open cursor is closed and an active transaction is rolled back first;
// only the connection close error is returned.
func (s *Session) Close() error {
	if s.state == Closed {
		return nil
	}

	if s.cursor != nil {
		if err := s.cursor.Close(); err != nil {
			s.log.Warn("close cursor", map[string]interface{}{"error": err})
		}
		s.cursor = nil
	}

	if s.tx != nil {
		if err := s.tx.Rollback(context.Background()); err != nil {
			s.log.Warn("rollback on close", map[string]interface{}{"error": err})
		} else {
			s.stats.Rollbacks++
		}
		s.tx = nil
	}

	err := s.conn.Close()
	s.conn = nil
	s.state = Closed
	if err != nil {
		s.log.Warn("session closed with error", map[string]interface{}{"error": err})
		return dberrors.Connection("close", err)
	}
	s.log.Info("session closed")
	return nil
}

func (s *Session) prepare(op, sql string) (connector.Command, error) {
	if s.state != Open && s.state != InTransaction {
		return nil, dberrors.InvalidState(op, s.state.String())
	}
	if err := s.checkCursor(op); err != nil {
		return nil, err
	}

	var (
		cmd connector.Command
		err error
	)
	if s.state == InTransaction {
		cmd, err = s.provider.CreateTxCommand(s.conn, s.tx, sql)
	} else {
		cmd, err = s.provider.CreateCommand(s.conn, sql)
	}
	if err != nil {
		s.stats.Failures++
		return nil, dberrors.Execution(sql, err)
	}

	s.log.Debug("statement", map[string]interface{}{
		"op":          op,
		"fingerprint": utils.FingerprintHex(sql),
		"in_tx":       s.state == InTransaction,
	})
	return cmd, nil
}

func (s *Session) checkCursor(op string) error {
	if s.cursor == nil {
		return nil
	}
	return dberrors.New(dberrors.ErrCodeInvalidState, op, "a result cursor is still open").
		WithDetail("state", s.state.String())
}

func (s *Session) endTransaction() {
	s.tx = nil
	s.state = Open
}
