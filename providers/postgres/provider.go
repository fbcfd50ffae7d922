// Package postgres provides PostgreSQL support over the native pgx driver.
package postgres

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
)

// Name is the catalog name of the provider.
const Name = "postgres"

type Provider struct{}

func init() {
	connector.Register(Name, New)
}

// New returns a PostgreSQL provider.
func New() (connector.Provider, error) {
	return &Provider{}, nil
}

// OpenConnection parses connString (URL or keyword/value form) without dialing.
func (p *Provider) OpenConnection(connString string) (connector.Connection, error) {
	return connector.NewPgxConnection(connString)
}

func (p *Provider) CreateCommand(conn connector.Connection, sql string) (connector.Command, error) {
	return connector.NewPgxCommand(conn, sql)
}

func (p *Provider) CreateTxCommand(conn connector.Connection, tx connector.Transaction, sql string) (connector.Command, error) {
	return connector.NewPgxTxCommand(conn, tx, sql)
}

var _ connector.Provider = (*Provider)(nil)
