package connector

import (
	"reflect"
)

// Provider is the capability a database vendor supplies. It is the only
// extension point: supporting a new database means implementing these three
// methods in a separate package.
type Provider interface {
	// OpenConnection constructs an unopened connection from a vendor-specific
	// connection string.
	OpenConnection(connString string) (Connection, error)
	// CreateCommand builds a command that runs outside any transaction.
	CreateCommand(conn Connection, sql string) (Command, error)
	// CreateTxCommand builds a command that runs inside tx, which must belong
	// to conn.
	CreateTxCommand(conn Connection, tx Transaction, sql string) (Command, error)
}

// Factory creates a provider instance. Plugin modules export a list of these.
type Factory func() (Provider, error)

// ProviderName returns the fully qualified type name of p, for example
// "github.com/Konsultn-Engineering/dbconsole/providers/sqlite.Provider".
func ProviderName(p Provider) string {
	t := reflect.TypeOf(p)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
