package db

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/jewelcatalog/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore keeps catalog collections as rows of kv_entries.
type KVStore struct {
	db *gorm.DB
}

// NewKVStore constructs a store bound to the provided gorm DB.
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the document stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Take(&entry).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set upserts the document stored under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).
		Error
}

// Ping verifies the datasource is reachable.
func (s *KVStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
