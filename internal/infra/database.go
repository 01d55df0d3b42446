package infra

import (
	"fmt"
	"strings"

	"tablepos/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the SQL backend used to mirror state bundles and makes
// sure the bundles table exists. driver: "postgres" | "mysql" | "sqlite".
// For sqlite the DSN is a file path (":memory:" works for throwaway runs).
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one writer; the terminal is single-user anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("bundles table: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates the bundles table. The bundle payloads
// themselves are versioned separately (see internal/migration).
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&model.Bundle{})
}
