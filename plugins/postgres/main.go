// Command postgres builds the postgres provider as a loadable module:
//
//	go build -buildmode=plugin -o postgres.so ./plugins/postgres
package main

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/providers/postgres"
)

// Providers is the module entry point looked up by the discovery package.
func Providers() []connector.Factory {
	return []connector.Factory{postgres.New}
}

func main() {}
