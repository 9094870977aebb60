package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/aquasure/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01092024_enable_pgcrypto",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error
			},
		},
		{
			ID: "07092024_create_sample_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Sample{}, &models.Location{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("samples", "locations")
			},
		},
		{
			ID: "20092024_create_control_charts",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ControlChart{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("control_charts")
			},
		},
		{
			ID: "05102024_create_predictions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Prediction{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("predictions")
			},
		},
		{
			ID: "12102024_add_sample_location_time_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_samples_location_timestamp ON samples (location, timestamp)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_samples_location_timestamp").Error
			},
		},
	})
	return m.Migrate()
}
