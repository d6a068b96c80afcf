package dataset

// database/sql drivers selectable through database.driver.
import (
	_ "github.com/go-sql-driver/mysql"    // "mysql"
	_ "github.com/microsoft/go-mssqldb" // "sqlserver"
	_ "modernc.org/sqlite"              // "sqlite", pure Go
)
