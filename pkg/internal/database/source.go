package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewSource opens the configured database. A postgres DSN is expected in
// production; anything else is treated as a sqlite path so the service can
// boot locally with zero configuration, same as the original deployment.
func NewSource() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	dialector := sqlite.Open(viper.GetString("database.sqlite_path"))
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgresOpen(dsn)
	} else if len(dsn) > 0 {
		dialector = sqlite.Open(dsn)
	} else {
		log.Warn().Msg("No database dsn configured, fallback to local sqlite database...")
	}

	return gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			IdentifierMaxLength: 64,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
