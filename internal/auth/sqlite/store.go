package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mudithakuruppu/employeemanagement-ui/internal/auth"
	sessionDatamodel "github.com/mudithakuruppu/employeemanagement-ui/internal/core/datamodel/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) auth.Store {
	return &Store{db: db}
}

// Open opens (creating if needed) the sqlite file at path and migrates the
// key/value table.
func Open(path string) (*gorm.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	// one connection: sqlite has a single writer and ":memory:" is per connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&sessionDatamodel.Entry{}); err != nil {
		return nil, fmt.Errorf("migrate session database: %w", err)
	}
	return db, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var entry sessionDatamodel.Entry
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := sessionDatamodel.Entry{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&sessionDatamodel.Entry{}).Error
}
