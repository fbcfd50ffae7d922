// Package sqlite provides SQLite support over the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"errors"
	"strings"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	_ "modernc.org/sqlite"
)

const (
	Name   = "sqlite"
	driver = "sqlite"
)

// ErrEmptyPath is returned for a blank connection string.
var ErrEmptyPath = errors.New("sqlite connection string must name a file or :memory:")

type Provider struct{}

func init() {
	connector.Register(Name, New)
}

// New returns an SQLite provider.
func New() (connector.Provider, error) {
	return &Provider{}, nil
}

// OpenConnection accepts a file path, a file: URI or ":memory:".
func (p *Provider) OpenConnection(connString string) (connector.Connection, error) {
	if strings.TrimSpace(connString) == "" {
		return nil, ErrEmptyPath
	}
	return connector.NewSQLConnection(driver, connString), nil
}

func (p *Provider) CreateCommand(conn connector.Connection, sql string) (connector.Command, error) {
	return connector.NewSQLCommand(conn, sql)
}

func (p *Provider) CreateTxCommand(conn connector.Connection, tx connector.Transaction, sql string) (connector.Command, error) {
	return connector.NewSQLTxCommand(conn, tx, sql)
}

var _ connector.Provider = (*Provider)(nil)
