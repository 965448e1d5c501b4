package main

import (
	"fmt"
	"strings"

	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDatabase connects using a DATABASE_URL and picks the gorm dialector from
// its scheme: sqlite for local development, mysql or sqlserver for hosted
// deployments.
func openDatabase(databaseURL string) (*gorm.DB, error) {
	u, err := dburl.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %v", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "sqlite3":
		dialector = sqlite.Open(u.DSN)
	case "mysql":
		dialector = mysql.Open(mysqlDSN(u.DSN))
	case "sqlserver":
		dialector = sqlserver.Open(u.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// mysqlDSN appends the driver options gorm needs without clobbering parameters
// already carried by the URL.
func mysqlDSN(dsn string) string {
	params := "charset=utf8mb4&parseTime=True&loc=Local"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}
