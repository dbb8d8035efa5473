package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func postgresOpen(dsn string) gorm.Dialector {
	// Some hosting providers still hand out the legacy scheme.
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return postgres.Open(dsn)
}
