package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LedgerEntry represents a row in the database
type LedgerEntry struct {
	Key          string `gorm:"primaryKey"`
	Attempts     int
	FirstAttempt time.Time
	LockedUntil  *time.Time
	ExpiresAt    time.Time `gorm:"index"`
}

func (e LedgerEntry) state() State {
	s := State{Attempts: e.Attempts, FirstAttempt: e.FirstAttempt}
	if e.LockedUntil != nil {
		s.LockedUntil = *e.LockedUntil
	}
	return s
}

type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(dsn string) (*DatabaseStore, error) {
	return OpenDatabaseStore(postgres.Open(dsn))
}

// OpenDatabaseStore connects through any GORM dialector and migrates the
// ledger table.
func OpenDatabaseStore(dialector gorm.Dialector) (*DatabaseStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&LedgerEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DatabaseStore{db: db}, nil
}

func (ds *DatabaseStore) Get(ctx context.Context, key string) (State, error) {
	var e LedgerEntry
	err := ds.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, time.Now()).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("load ledger entry %s: %w", key, err)
	}
	return e.state(), nil
}

// Set upserts the entry with TTL
func (ds *DatabaseStore) Set(ctx context.Context, key string, s State, ttl time.Duration) error {
	e := LedgerEntry{
		Key:          key,
		Attempts:     s.Attempts,
		FirstAttempt: s.FirstAttempt,
		ExpiresAt:    time.Now().Add(ttl),
	}
	if !s.LockedUntil.IsZero() {
		lockedUntil := s.LockedUntil
		e.LockedUntil = &lockedUntil
	}

	if err := ds.db.WithContext(ctx).Save(&e).Error; err != nil {
		return fmt.Errorf("save ledger entry %s: %w", key, err)
	}
	return nil
}

func (ds *DatabaseStore) Delete(ctx context.Context, key string) error {
	if err := ds.db.WithContext(ctx).Delete(&LedgerEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete ledger entry %s: %w", key, err)
	}
	return nil
}

// Exists checks if a key exists in database and hasn't expired
func (ds *DatabaseStore) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := ds.db.WithContext(ctx).Model(&LedgerEntry{}).
		Where("key = ? AND expires_at > ?", key, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count ledger entry %s: %w", key, err)
	}
	return count > 0, nil
}

// Prune deletes expired rows. Get already ignores them; this only reclaims space.
func (ds *DatabaseStore) Prune(ctx context.Context) (int64, error) {
	res := ds.db.WithContext(ctx).Delete(&LedgerEntry{}, "expires_at <= ?", time.Now())
	if res.Error != nil {
		return 0, fmt.Errorf("prune ledger: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Close closes the database connection
func (ds *DatabaseStore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
