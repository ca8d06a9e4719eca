// Package storage persists companion state in PostgreSQL as keyed JSON
// documents, mirroring the layout the web client used.
package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store holds the DB pool and typed stores.
type Store struct {
	db       *gorm.DB
	Scores   *ScoreStore
	Diaries  *DiaryStore
	Profiles *ProfileStore
}

// NewStore initializes the PostgreSQL pool and typed stores.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&entryModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate storage table: %w", err)
	}

	kv := &gormKV{db: db}
	return &Store{
		db:       db,
		Scores:   NewScoreStore(kv),
		Diaries:  NewDiaryStore(kv),
		Profiles: NewProfileStore(kv),
	}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// entryModel maps to the app_storage table.
type entryModel struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (entryModel) TableName() string {
	return "app_storage"
}

// gormKV implements KV on the app_storage table.
type gormKV struct {
	db *gorm.DB
}

func (s *gormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record entryModel
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read storage key %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (s *gormKV) Set(ctx context.Context, key string, value []byte) error {
	record := entryModel{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to write storage key %q: %w", key, err)
	}
	return nil
}

func (s *gormKV) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&entryModel{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("failed to delete storage key %q: %w", key, err)
	}
	return nil
}
