package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"storefront-checkout/internal/core/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// kvEntry is the row backing one key.
type kvEntry struct {
	Key       string     `gorm:"primaryKey;size:255"`
	Value     []byte     `gorm:"not null"`
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// GormStore implements the Store interface on a SQL table through GORM.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// OpenPostgres connects to PostgreSQL and migrates the kv_entries table.
func OpenPostgres(cfg config.DatabaseConfig) (*GormStore, error) {
	gormCfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates the kv_entries table.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&kvEntry{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}

// Get retrieves a value by key, treating expired rows as missing.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get key %s: %w", ErrUnavailable, key, err)
	}
	if entry.ExpiresAt != nil && !entry.ExpiresAt.After(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return entry.Value, nil
}

// Set upserts the value for key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	entry := kvEntry{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		entry.ExpiresAt = &exp
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%w: failed to set key %s: %w", ErrUnavailable, key, err)
	}
	return nil
}

// Delete removes the row for key.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("%w: failed to delete key %s: %w", ErrUnavailable, key, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: database ping failed: %w", ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
