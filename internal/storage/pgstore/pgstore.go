// Package pgstore provides a PostgreSQL-backed implementation of storage.Backend using GORM.
package pgstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mmynk/amigo/internal/storage"
)

var _ storage.Backend = (*Store)(nil)

// Entry is one row of the key/value table.
type Entry struct {
	Key       string `gorm:"primaryKey;type:text"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of GORM naming strategy.
func (Entry) TableName() string {
	return "kv_entries"
}

// Store implements storage.Backend on top of a *gorm.DB.
type Store struct {
	db *gorm.DB
}

// New opens a PostgreSQL connection from dsn and migrates the entries table.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return NewFromDB(db)
}

// NewFromDB wraps an existing connection and migrates the entries table.
func NewFromDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var entries []Entry
	res := s.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&entries)
	if res.Error != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, res.Error)
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	return entries[0].Value, true, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
