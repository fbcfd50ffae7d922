// Package mysql provides MySQL and MariaDB support over go-sql-driver/mysql.
package mysql

import (
	"fmt"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/go-sql-driver/mysql"
)

const (
	Name   = "mysql"
	driver = "mysql"
)

type Provider struct{}

func init() {
	connector.Register(Name, New)
}

// New returns a MySQL provider.
func New() (connector.Provider, error) {
	return &Provider{}, nil
}

// OpenConnection validates connString, which uses the driver's
// user:password@tcp(host:port)/dbname form.
func (p *Provider) OpenConnection(connString string) (connector.Connection, error) {
	if _, err := mysql.ParseDSN(connString); err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
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
