package db

import (
	"github.com/TSCosta20/housing-project/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Source{},
		&models.RawListing{},
		&models.Listing{},
		&models.Zone{},
		&models.ZoneMembership{},
		&models.ZoneDailyStats{},
		&models.ListingScore{},
		&models.DealEvent{},
		&models.DeviceToken{},
		&models.PipelineRun{},
	)
}
