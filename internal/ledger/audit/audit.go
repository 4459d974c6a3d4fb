// Package audit keeps the bounded, time-ordered trail of mutating ledger
// operations.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tisa/internal/ledger/models"
	"tisa/internal/ledger/store"
	"tisa/internal/logger"
)

// Trail appends audit entries to the persisted log. Entries are immutable,
// ordered most-recent-first and capped at models.AuditLogCap; insertion
// beyond the cap evicts the oldest entry.
type Trail struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

// Option customises a Trail.
type Option func(*Trail)

// WithNowFunc overrides the entry timestamp clock (tests).
func WithNowFunc(now func() time.Time) Option {
	return func(t *Trail) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDFunc overrides entry id generation (tests).
func WithIDFunc(newID func() string) Option {
	return func(t *Trail) {
		if newID != nil {
			t.newID = newID
		}
	}
}

// New creates a Trail over the given store.
func New(s store.Store, opts ...Option) *Trail {
	t := &Trail{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends one entry for the given action. The write is attempted
// synchronously, but a persistence failure is logged and swallowed: losing
// an audit record must not block the mutation that triggered it.
func (t *Trail) Record(ctx context.Context, action, checkID, details string) {
	logs, err := t.store.LoadLogs(ctx)
	if err != nil {
		logger.L().Errorf("Audit trail: failed to load log: %v", err)
		return
	}

	entry := models.AuditLogEntry{
		ID:        t.newID(),
		Action:    action,
		CheckID:   checkID,
		Details:   details,
		Timestamp: t.now(),
	}

	logs = append([]models.AuditLogEntry{entry}, logs...)
	if len(logs) > models.AuditLogCap {
		logs = logs[:models.AuditLogCap]
	}

	if err := t.store.SaveLogs(ctx, logs); err != nil {
		logger.L().Errorf("Audit trail: failed to persist entry %s: %v", entry.ID, err)
	}
}
