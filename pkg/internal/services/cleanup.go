package services

import (
	"time"

	"github.com/classpulse/classpulse/pkg/internal/database"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup purges rows that were soft deleted more than thirty
// days ago. Classroom deletion itself is immediate; this sweeps anything
// left behind by out-of-band soft deletes.
func (v *Service) DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := v.db.Unscoped().Where("deleted_at < ?", deadline).Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto database cleanup...")
			continue
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
