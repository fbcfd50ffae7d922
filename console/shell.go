package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Konsultn-Engineering/dbconsole/cache"
	"github.com/Konsultn-Engineering/dbconsole/connector"
	dberrors "github.com/Konsultn-Engineering/dbconsole/errors"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	"github.com/Konsultn-Engineering/dbconsole/session"
	"github.com/Konsultn-Engineering/dbconsole/statement"
)

const defaultHistorySize = 500

const helpText = `Statements are sent to the database as typed, one per line.
Lines starting with "select" are read and printed as a table; everything else
reports the number of affected records.

  \begin                     start a transaction
  \commit                    commit the active transaction
  \rollback                  roll back the active transaction
  \connect <provider> <dsn>  close the current session and open a new one
  \status                    show the session state and counters
  \history                   list previous input
  \help                      show this help
  \q                         quit`

// Resolver maps a provider name typed in the shell to a provider.
type Resolver func(name string) (connector.Provider, bool)

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithSession starts the shell on an already opened session.
func WithSession(s *session.Session) ShellOption {
	return func(sh *Shell) { sh.session = s }
}

// WithHistorySize bounds the number of remembered input lines.
func WithHistorySize(n int) ShellOption {
	return func(sh *Shell) { sh.historySize = n }
}

// WithResolver enables \connect.
func WithResolver(r Resolver) ShellOption {
	return func(sh *Shell) { sh.resolve = r }
}

// WithRetry sets the open retry policy used by \connect.
func WithRetry(r *connector.RetryConfig) ShellOption {
	return func(sh *Shell) { sh.retry = r }
}

// WithShellLogger sets the logger handed to new sessions.
func WithShellLogger(l *logger.Logger) ShellOption {
	return func(sh *Shell) {
		if l != nil {
			sh.log = l
		}
	}
}

// Shell interprets one line of input at a time against the current session.
type Shell struct {
	out         io.Writer
	session     *session.Session
	resolve     Resolver
	retry       *connector.RetryConfig
	log         *logger.Logger
	historySize int
	history     *cache.History
}

// NewShell creates a shell writing results to out.
func NewShell(out io.Writer, opts ...ShellOption) (*Shell, error) {
	sh := &Shell{
		out:         out,
		log:         logger.Nop(),
		historySize: defaultHistorySize,
	}
	for _, opt := range opts {
		opt(sh)
	}
	if sh.historySize <= 0 {
		sh.historySize = defaultHistorySize
	}

	history, err := cache.NewHistory(sh.historySize)
	if err != nil {
		return nil, err
	}
	sh.history = history
	return sh, nil
}

// Session returns the current session, or nil.
func (sh *Shell) Session() *session.Session { return sh.session }

// Handle runs one line of input. exit is true when the user asked to quit.
// Errors are per line; the shell stays usable after any of them.
func (sh *Shell) Handle(ctx context.Context, line string) (exit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	sh.history.Add(line)

	if !strings.HasPrefix(line, `\`) {
		return false, sh.execute(ctx, line)
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case `\q`, `\quit`:
		return true, nil
	case `\help`, `\?`:
		fmt.Fprintln(sh.out, helpText)
	case `\history`:
		sh.printHistory()
	case `\status`:
		sh.printStatus()
	case `\begin`:
		return false, sh.transaction(ctx, "BEGIN", (*session.Session).BeginTransaction)
	case `\commit`:
		return false, sh.transaction(ctx, "COMMIT", (*session.Session).CommitTransaction)
	case `\rollback`:
		return false, sh.transaction(ctx, "ROLLBACK", (*session.Session).RollbackTransaction)
	case `\connect`:
		if len(fields) < 3 {
			return false, fmt.Errorf(`usage: \connect <provider> <connection string>`)
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		connString := strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
		return false, sh.connectByName(ctx, fields[1], connString)
	default:
		return false, fmt.Errorf(`unknown command %s, try \help`, fields[0])
	}
	return false, nil
}

// Switch closes the current session and opens a new one on provider. The old
// session is discarded even when closing it fails; that failure is reported
// as a warning on the output.
func (sh *Shell) Switch(ctx context.Context, provider connector.Provider, connString string) error {
	if sh.session != nil {
		if err := sh.session.Close(); err != nil {
			fmt.Fprintf(sh.out, "warning: closing previous session: %v\n", err)
		}
		sh.session = nil
	}

	s, err := Connect(ctx, provider, connString, sh.retry, sh.log)
	if err != nil {
		return err
	}
	sh.session = s
	fmt.Fprintf(sh.out, "connected (%s)\n", connector.ProviderName(provider))
	return nil
}

// Close closes the current session, if any.
func (sh *Shell) Close() error {
	if sh.session == nil {
		return nil
	}
	err := sh.session.Close()
	sh.session = nil
	return err
}

// History returns remembered input, oldest first.
func (sh *Shell) History() []string {
	return sh.history.Lines()
}

func (sh *Shell) execute(ctx context.Context, sql string) error {
	if sh.session == nil {
		return dberrors.InvalidState("execute", "not connected")
	}
	res, err := statement.Execute(ctx, sh.session, sql)
	if err != nil {
		return err
	}
	return Render(sh.out, res)
}

func (sh *Shell) transaction(ctx context.Context, tag string, op func(*session.Session, context.Context) error) error {
	if sh.session == nil {
		return dberrors.InvalidState(strings.ToLower(tag), "not connected")
	}
	if err := op(sh.session, ctx); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, tag)
	return nil
}

func (sh *Shell) connectByName(ctx context.Context, name, connString string) error {
	if sh.resolve == nil {
		return fmt.Errorf("switching providers is not available")
	}
	p, ok := sh.resolve(name)
	if !ok {
		return fmt.Errorf("unknown provider %q", name)
	}
	return sh.Switch(ctx, p, connString)
}

func (sh *Shell) printStatus() {
	if sh.session == nil {
		fmt.Fprintln(sh.out, "not connected")
		return
	}
	st := sh.session.Stats()
	fmt.Fprintf(sh.out, "session:   %s\nprovider:  %s\nstate:     %s\nreads:     %d\nwrites:    %d (%d records)\ncommits:   %d\nrollbacks: %d\nfailures:  %d\n",
		sh.session.ID(),
		connector.ProviderName(sh.session.Provider()),
		sh.session.State(),
		st.Reads, st.Writes, st.RowsAffected, st.Commits, st.Rollbacks, st.Failures)
}

func (sh *Shell) printHistory() {
	for i, line := range sh.History() {
		fmt.Fprintf(sh.out, "%4d  %s\n", i+1, line)
	}
}
