package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartEntry is a single key-value row holding a serialized cart.
type CartEntry struct {
	Key       string `gorm:"column:storage_key;primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// GORMCartStorage is a GORM implementation of CartStorage.
type GORMCartStorage struct {
	db *gorm.DB
}

// NewGORMCartStorage creates a new instance of GORMCartStorage.
// The cart_entries table must already be migrated.
func NewGORMCartStorage(db *gorm.DB) *GORMCartStorage {
	return &GORMCartStorage{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (s *GORMCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry CartEntry
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cart entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts value under key.
func (s *GORMCartStorage) Set(ctx context.Context, key, value string) error {
	entry := CartEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write cart entry %s: %w", key, err)
	}
	return nil
}
