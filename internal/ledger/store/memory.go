package store

import (
	"context"
	"sync"
	"time"

	"tisa/internal/ledger/models"
)

// MemoryStore is an in-memory Store used by tests and dry runs. It mirrors
// the BoltStore contract, including the LastSyncTimestamp stamping.
type MemoryStore struct {
	mu     sync.Mutex
	checks []models.Check
	logs   []models.AuditLogEntry
	cfg    *models.TelegramConfig

	// Now replaces the clock when non-nil (tests).
	Now func() time.Time

	// Fail* force the next corresponding call to return the given error.
	FailLoadChecks error
	FailSaveChecks error
	FailLoadLogs   error
	FailSaveLogs   error
	FailLoadConfig error
	FailSaveConfig error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryStore) LoadChecks(ctx context.Context) ([]models.Check, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoadChecks != nil {
		return nil, s.FailLoadChecks
	}
	out := make([]models.Check, len(s.checks))
	copy(out, s.checks)
	return out, nil
}

func (s *MemoryStore) SaveChecks(ctx context.Context, checks []models.Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveChecks != nil {
		return s.FailSaveChecks
	}
	s.checks = make([]models.Check, len(checks))
	copy(s.checks, checks)
	return nil
}

func (s *MemoryStore) LoadLogs(ctx context.Context) ([]models.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoadLogs != nil {
		return nil, s.FailLoadLogs
	}
	out := make([]models.AuditLogEntry, len(s.logs))
	copy(out, s.logs)
	return out, nil
}

func (s *MemoryStore) SaveLogs(ctx context.Context, logs []models.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveLogs != nil {
		return s.FailSaveLogs
	}
	s.logs = make([]models.AuditLogEntry, len(logs))
	copy(s.logs, logs)
	return nil
}

func (s *MemoryStore) LoadConfig(ctx context.Context) (models.TelegramConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoadConfig != nil {
		return models.TelegramConfig{}, s.FailLoadConfig
	}
	if s.cfg == nil {
		return models.DefaultTelegramConfig(), nil
	}
	return *s.cfg, nil
}

func (s *MemoryStore) SaveConfig(ctx context.Context, cfg models.TelegramConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveConfig != nil {
		return s.FailSaveConfig
	}
	cfg.LastSyncTimestamp = s.now()
	s.cfg = &cfg
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
