// Package service is the single entry point for ledger operations. It
// composes the record store, the audit trail and the notification dispatcher
// under one policy: within one call the collection mutation is persisted
// first, the audit entry second, and the notification dispatch last.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tisa/internal/jalali"
	"tisa/internal/ledger/audit"
	"tisa/internal/ledger/models"
	"tisa/internal/ledger/store"
	"tisa/internal/logger"
)

// ErrCheckNotFound is returned when an operation references an id that is
// not in the ledger.
var ErrCheckNotFound = errors.New("check not found")

// Notifier is the outbound notification side channel. Implementations are
// best-effort and must never return delivery failures to the ledger.
type Notifier interface {
	Send(ctx context.Context, cfg models.TelegramConfig, text string)
}

// Service orchestrates ledger operations over a Store, an audit Trail and a
// Notifier. It holds no private copies of the collections and re-reads after
// every delegated mutation.
type Service struct {
	store    store.Store
	trail    *audit.Trail
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// Option customises a Service.
type Option func(*Service)

// WithNowFunc overrides the clock (tests and the reminder sweep).
func WithNowFunc(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc overrides check id generation (tests).
func WithIDFunc(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New creates the ledger service.
func New(st store.Store, trail *audit.Trail, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		store:    st,
		trail:    trail,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save creates or replaces a check. On the create path a missing id is
// assigned and createdAt/updatedAt are set; on the update path the record is
// replaced in full with a refreshed updatedAt while createdAt is preserved.
// Validation (sayad id length and friends) is the caller layer's job.
func (s *Service) Save(ctx context.Context, check models.Check) (models.Check, error) {
	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return models.Check{}, fmt.Errorf("failed to load checks: %w", err)
	}
	cfg := s.loadConfigBestEffort(ctx)

	now := s.now()
	var message string
	var action, details string

	idx := indexByID(checks, check.ID)
	if idx >= 0 {
		// Update path: full replace, createdAt immutable.
		prevStatus := checks[idx].Status
		check.CreatedAt = checks[idx].CreatedAt
		check.UpdatedAt = now
		checks[idx] = check

		action, details = models.ActionEdit, editDetails(check)
		if cfg.NotifyOnStatusChange && prevStatus != check.Status {
			message = statusChangeMessage(check)
		}
	} else {
		if check.ID == "" {
			check.ID = s.newID()
		}
		if check.Status == "" {
			check.Status = models.StatusPending
		}
		check.CreatedAt = now
		check.UpdatedAt = now
		checks = append(checks, check)

		action, details = models.ActionCreate, createDetails(check)
		if cfg.NotifyOnCreate {
			message = createMessage(check)
		}
	}

	if err := s.store.SaveChecks(ctx, checks); err != nil {
		return models.Check{}, fmt.Errorf("failed to persist checks: %w", err)
	}

	s.trail.Record(ctx, action, check.ID, details)

	if message != "" {
		s.notifier.Send(ctx, cfg, message)
	}
	return check, nil
}

// Delete removes a check by id. A missing id is a no-op on the collection,
// but the audit entry is still written; the deletion notification fires only
// when the record existed.
func (s *Service) Delete(ctx context.Context, id string) error {
	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checks: %w", err)
	}
	cfg := s.loadConfigBestEffort(ctx)

	var deleted *models.Check
	kept := checks[:0]
	for i := range checks {
		if checks[i].ID == id {
			c := checks[i]
			deleted = &c
			continue
		}
		kept = append(kept, checks[i])
	}

	if err := s.store.SaveChecks(ctx, kept); err != nil {
		return fmt.Errorf("failed to persist checks: %w", err)
	}

	s.trail.Record(ctx, models.ActionDelete, id, deleteDetails())

	if cfg.NotifyOnDelete && deleted != nil {
		s.notifier.Send(ctx, cfg, deleteMessage(*deleted))
	}
	return nil
}

// ChangeStatus replaces the status of an existing check, routing through the
// same path as Save's update branch so the audit and notification rules for
// a status change apply identically.
func (s *Service) ChangeStatus(ctx context.Context, id string, status models.CheckStatus) (models.Check, error) {
	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return models.Check{}, fmt.Errorf("failed to load checks: %w", err)
	}
	idx := indexByID(checks, id)
	if idx < 0 {
		return models.Check{}, fmt.Errorf("%w: %s", ErrCheckNotFound, id)
	}

	updated := checks[idx]
	updated.Status = status
	return s.Save(ctx, updated)
}

// ScanReminders is a read-only sweep over pending checks, dispatching a
// reminder for every check whose due date is exactly NotifyDaysBefore days
// away. It writes nothing and produces no audit entries; it is meant to run
// once per session start. Returns the number of reminders dispatched.
func (s *Service) ScanReminders(ctx context.Context) (int, error) {
	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load notification config: %w", err)
	}
	if !cfg.IsActive {
		return 0, nil
	}

	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load checks: %w", err)
	}

	now := s.now()
	dispatched := 0
	for _, c := range checks {
		if c.Status != models.StatusPending {
			continue
		}
		if jalali.DaysUntilAt(now, c.DueDate) != cfg.NotifyDaysBefore {
			continue
		}
		s.notifier.Send(ctx, cfg, reminderMessage(c, cfg.NotifyDaysBefore))
		dispatched++
	}
	return dispatched, nil
}

// Checks returns the current checks collection.
func (s *Service) Checks(ctx context.Context) ([]models.Check, error) {
	return s.store.LoadChecks(ctx)
}

// Check returns one check by id.
func (s *Service) Check(ctx context.Context, id string) (models.Check, error) {
	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return models.Check{}, err
	}
	if idx := indexByID(checks, id); idx >= 0 {
		return checks[idx], nil
	}
	return models.Check{}, fmt.Errorf("%w: %s", ErrCheckNotFound, id)
}

// Logs returns the audit log, most recent first.
func (s *Service) Logs(ctx context.Context) ([]models.AuditLogEntry, error) {
	return s.store.LoadLogs(ctx)
}

// Config returns the notification configuration.
func (s *Service) Config(ctx context.Context) (models.TelegramConfig, error) {
	return s.store.LoadConfig(ctx)
}

// SaveConfig persists the notification configuration; the store stamps the
// sync timestamp.
func (s *Service) SaveConfig(ctx context.Context, cfg models.TelegramConfig) error {
	return s.store.SaveConfig(ctx, cfg)
}

// loadConfigBestEffort degrades to the default configuration when the stored
// one is unreadable: the config only gates the notification side channel,
// and a broken side channel must not block a ledger mutation.
func (s *Service) loadConfigBestEffort(ctx context.Context) models.TelegramConfig {
	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		logger.L().Warnf("Falling back to default notification config: %v", err)
		return models.DefaultTelegramConfig()
	}
	return cfg
}

func indexByID(checks []models.Check, id string) int {
	if id == "" {
		return -1
	}
	for i := range checks {
		if checks[i].ID == id {
			return i
		}
	}
	return -1
}
