// Package app wires the ledger services together and manages their
// lifecycle. The store is constructed explicitly here and handed to the
// service; there is no process-wide mutable state.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tisa/internal/config"
	"tisa/internal/ledger/audit"
	"tisa/internal/ledger/service"
	"tisa/internal/ledger/store"
	"tisa/internal/logger"
	"tisa/internal/telegram"
)

// App is the service container.
type App struct {
	Store    store.Store
	Notifier *telegram.Notifier
	Ledger   *service.Service
}

// New opens the store and wires the ledger service. A store that cannot be
// opened or read is an initialization error, not an empty ledger.
func New(cfg *config.Config) (*App, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	st, err := store.OpenBolt(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init store failed: %w", err)
	}

	notifier := telegram.NewNotifier(telegram.WithTimeout(cfg.NotifyTimeout))
	ledger := service.New(st, audit.New(st), notifier)

	logger.L().Debugf("Ledger store opened at %s", cfg.DBPath)
	return &App{Store: st, Notifier: notifier, Ledger: ledger}, nil
}

// StartupScan runs the reminder sweep once, as happens at every session
// start. There is no recurring schedule.
func (a *App) StartupScan(ctx context.Context) {
	dispatched, err := a.Ledger.ScanReminders(ctx)
	if err != nil {
		logger.L().Errorf("Reminder sweep failed: %v", err)
		return
	}
	if dispatched > 0 {
		logger.L().Infof("Reminder sweep dispatched %d notification(s)", dispatched)
	}
}

// Close flushes pending notification deliveries and releases the store.
func (a *App) Close(ctx context.Context) error {
	if a.Notifier != nil {
		if err := a.Notifier.Flush(ctx); err != nil {
			logger.L().Warnf("Closing with undelivered notifications: %v", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("close store failed: %w", err)
		}
	}
	return nil
}
