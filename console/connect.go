// Package console is the host side of dbconsole: it opens sessions, runs
// shell input through them and renders results as text.
package console

import (
	"context"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	"github.com/Konsultn-Engineering/dbconsole/session"
)

// Connect opens a session on provider. With a retry policy, retryable open
// failures are retried, each attempt on a brand new session since a session
// cannot be reopened.
func Connect(ctx context.Context, provider connector.Provider, connString string, retry *connector.RetryConfig, log *logger.Logger) (*session.Session, error) {
	if log == nil {
		log = logger.Nop()
	}
	attempt := 0
	open := func(ctx context.Context) (*session.Session, error) {
		attempt++
		s := session.New(provider, session.WithLogger(log))
		if err := s.Open(ctx, connString); err != nil {
			log.Warn("open failed", map[string]interface{}{"attempt": attempt, "error": err})
			return nil, err
		}
		return s, nil
	}

	if retry == nil {
		return open(ctx)
	}
	return connector.Retry(ctx, *retry, open)
}
