// Command sqlserver builds the sqlserver provider as a loadable module:
//
//	go build -buildmode=plugin -o sqlserver.so ./plugins/sqlserver
package main

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/providers/sqlserver"
)

// Providers is the module entry point looked up by the discovery package.
func Providers() []connector.Factory {
	return []connector.Factory{sqlserver.New}
}

func main() {}
