// Command mysql builds the mysql provider as a loadable module:
//
//	go build -buildmode=plugin -o mysql.so ./plugins/mysql
package main

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/providers/mysql"
)

// Providers is the module entry point looked up by the discovery package.
func Providers() []connector.Factory {
	return []connector.Factory{mysql.New}
}

func main() {}
