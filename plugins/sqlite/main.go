// Command sqlite builds the sqlite provider as a loadable module:
//
//	go build -buildmode=plugin -o sqlite.so ./plugins/sqlite
package main

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/providers/sqlite"
)

// Providers is the module entry point looked up by the discovery package.
func Providers() []connector.Factory {
	return []connector.Factory{sqlite.New}
}

func main() {}
