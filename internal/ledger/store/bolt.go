package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"tisa/internal/ledger/models"
)

const (
	bucketName = "tisa"

	keyChecks = "checks"
	keyLogs   = "logs"
	keyConfig = "tg_config"
)

// BoltStore is the bbolt-backed Store. One bucket, three keys, JSON values
// with ISO-8601 timestamps.
type BoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

// BoltOption customises a BoltStore.
type BoltOption func(*BoltStore)

// WithNowFunc overrides the clock used to stamp LastSyncTimestamp (tests).
func WithNowFunc(now func() time.Time) BoltOption {
	return func(s *BoltStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenBolt opens (or creates) the database file at path and ensures the
// ledger bucket exists.
func OpenBolt(path string, opts ...BoltOption) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	s := &BoltStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) load(key string, out interface{}) (found bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("stored %s is unreadable: %w", key, err)
		}
		return nil
	})
	return found, err
}

func (s *BoltStore) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// LoadChecks returns the persisted checks collection, empty when nothing was
// ever saved.
func (s *BoltStore) LoadChecks(ctx context.Context) ([]models.Check, error) {
	var checks []models.Check
	if _, err := s.load(keyChecks, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// SaveChecks overwrites the checks collection.
func (s *BoltStore) SaveChecks(ctx context.Context, checks []models.Check) error {
	if checks == nil {
		checks = []models.Check{}
	}
	return s.save(keyChecks, checks)
}

// LoadLogs returns the persisted audit log, most recent first.
func (s *BoltStore) LoadLogs(ctx context.Context) ([]models.AuditLogEntry, error) {
	var logs []models.AuditLogEntry
	if _, err := s.load(keyLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// SaveLogs overwrites the audit log collection.
func (s *BoltStore) SaveLogs(ctx context.Context, logs []models.AuditLogEntry) error {
	if logs == nil {
		logs = []models.AuditLogEntry{}
	}
	return s.save(keyLogs, logs)
}

// LoadConfig returns the stored telegram configuration, or the default when
// nothing was ever saved.
func (s *BoltStore) LoadConfig(ctx context.Context) (models.TelegramConfig, error) {
	cfg := models.DefaultTelegramConfig()
	found, err := s.load(keyConfig, &cfg)
	if err != nil {
		return models.TelegramConfig{}, err
	}
	if !found {
		return models.DefaultTelegramConfig(), nil
	}
	return cfg, nil
}

// SaveConfig stamps LastSyncTimestamp and overwrites the configuration.
func (s *BoltStore) SaveConfig(ctx context.Context, cfg models.TelegramConfig) error {
	cfg.LastSyncTimestamp = s.now()
	return s.save(keyConfig, cfg)
}

var _ Store = (*BoltStore)(nil)
