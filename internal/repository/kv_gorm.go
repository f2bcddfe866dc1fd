package repository

import (
	"context"
	"errors"

	"go-farm-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormKV struct {
	db *gorm.DB
}

// NewGormKV stores documents as rows of store_entries.
func NewGormKV(db *gorm.DB) KVStore {
	return &gormKV{db}
}

// Migrate creates the store_entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.StoreEntry{})
}

func (r *gormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.StoreEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set upserts so every write is a full replace of the document.
func (r *gormKV) Set(ctx context.Context, key string, value []byte) error {
	entry := model.StoreEntry{Key: key, Value: string(value)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *gormKV) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.StoreEntry{}, "key = ?", key).Error
}
