package repository

import (
	"fmt"

	"tablepos/internal/config"
	"tablepos/internal/infra"
)

// Open builds the bundle backend selected by STORAGE_DRIVER. The returned
// close func releases the underlying connection.
func Open(cfg *config.Config) (BundleStore, func() error, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemoryBundleStore(), func() error { return nil }, nil
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return NewRedisBundleStore(rdb, cfg.RedisKeyPrefix), rdb.Close, nil
	case "sqlite", "postgres", "mysql":
		db, err := infra.NewDatabase(cfg.StorageDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.StorageDriver, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewGormBundleStore(db), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
