// Package store persists the three ledger collections (checks, audit log,
// telegram configuration) as JSON values under named keys in a local
// key-value database. Reads are full-collection, writes are full-collection
// overwrites; there is no partial or indexed access.
package store

import (
	"context"

	"tisa/internal/ledger/models"
)

// Store is the persistence boundary of the ledger.
//
// Load methods return the last saved value, or the collection's default when
// nothing was ever written. A value that exists but cannot be decoded is an
// error: storage corruption is surfaced, never silently degraded to empty.
type Store interface {
	LoadChecks(ctx context.Context) ([]models.Check, error)
	SaveChecks(ctx context.Context, checks []models.Check) error

	LoadLogs(ctx context.Context) ([]models.AuditLogEntry, error)
	SaveLogs(ctx context.Context, logs []models.AuditLogEntry) error

	LoadConfig(ctx context.Context) (models.TelegramConfig, error)
	// SaveConfig stamps LastSyncTimestamp before writing; callers never set
	// it themselves.
	SaveConfig(ctx context.Context, cfg models.TelegramConfig) error

	Close() error
}
