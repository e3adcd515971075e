package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TwisterMc/JobTwister/internal/models"
)

// OpenDatabase opens the object store and migrates the schema. SQLite is
// the on-device default; a DATABASE_URL switches to PostgreSQL.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); mkErr != nil {
			return nil, mkErr
		}
		db, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if cfg.DatabaseURL == "" {
		// sqlite needs this for the cascade on interviews
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	if err := db.AutoMigrate(&models.Job{}, &models.Interview{}, &models.Settings{}); err != nil {
		return nil, err
	}
	return db, nil
}
