package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tablepos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BundleStore is the persistence boundary for state bundles. Each bundle is
// loaded and saved as a whole; there are no partial updates.
// Load reports found=false when the bundle was never saved.
type BundleStore interface {
	Load(ctx context.Context, name string, dst any) (found bool, err error)
	Save(ctx context.Context, name string, v any) error
	Ping(ctx context.Context) error
}

// ErrCorruptBundle wraps payloads that exist but cannot be decoded.
var ErrCorruptBundle = errors.New("corrupt bundle")

type gormBundleStore struct{ db *gorm.DB }

// NewGormBundleStore stores bundles as rows of the bundles table.
func NewGormBundleStore(db *gorm.DB) BundleStore { return &gormBundleStore{db: db} }

func (r *gormBundleStore) Load(ctx context.Context, name string, dst any) (bool, error) {
	var b model.Bundle
	err := r.db.WithContext(ctx).First(&b, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(b.Payload), dst); err != nil {
		return true, fmt.Errorf("%w %q: %v", ErrCorruptBundle, name, err)
	}
	return true, nil
}

func (r *gormBundleStore) Save(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode bundle %q: %w", name, err)
	}
	b := model.Bundle{Name: name, Payload: string(payload), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&b).Error
}

func (r *gormBundleStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
