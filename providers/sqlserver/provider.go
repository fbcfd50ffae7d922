// Package sqlserver provides Microsoft SQL Server support over go-mssqldb.
package sqlserver

import (
	"fmt"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

const (
	Name   = "sqlserver"
	driver = "sqlserver"
)

type Provider struct{}

func init() {
	connector.Register(Name, New)
}

// New returns a SQL Server provider.
func New() (connector.Provider, error) {
	return &Provider{}, nil
}

// OpenConnection accepts sqlserver:// URLs, ADO and ODBC style strings.
func (p *Provider) OpenConnection(connString string) (connector.Connection, error) {
	if _, err := msdsn.Parse(connString); err != nil {
		return nil, fmt.Errorf("invalid sqlserver connection string: %w", err)
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
