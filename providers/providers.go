// Package providers links every compiled-in vendor provider into the
// connector catalog. Import it for side effects.
package providers

import (
	_ "github.com/Konsultn-Engineering/dbconsole/providers/mysql"
	_ "github.com/Konsultn-Engineering/dbconsole/providers/oracle"
	_ "github.com/Konsultn-Engineering/dbconsole/providers/postgres"
	_ "github.com/Konsultn-Engineering/dbconsole/providers/sqlite"
	_ "github.com/Konsultn-Engineering/dbconsole/providers/sqlserver"
)
