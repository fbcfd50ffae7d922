// Command oracle builds the oracle provider as a loadable module:
//
//	go build -buildmode=plugin -o oracle.so ./plugins/oracle
package main

import (
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/providers/oracle"
)

// Providers is the module entry point looked up by the discovery package.
func Providers() []connector.Factory {
	return []connector.Factory{oracle.New}
}

func main() {}
