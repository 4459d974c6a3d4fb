package models

import "time"

// TelegramConfig is the singleton notification configuration. It is
// read-modify-write with last-writer-wins semantics; LastSyncTimestamp is
// stamped by the store on every save.
type TelegramConfig struct {
	BotToken             string    `json:"botToken"`
	ChatID               string    `json:"chatId"`
	IsActive             bool      `json:"isActive"`
	NotifyOnCreate       bool      `json:"notifyOnCreate"`
	NotifyOnDelete       bool      `json:"notifyOnDelete"`
	NotifyOnStatusChange bool      `json:"notifyOnStatusChange"`
	NotifyDaysBefore     int       `json:"notifyDaysBefore"`
	LastSyncTimestamp    time.Time `json:"lastSyncTimestamp,omitzero"`
}

// DefaultTelegramConfig returns the configuration used when nothing was ever
// stored: notifications per event type enabled but the master switch off.
func DefaultTelegramConfig() TelegramConfig {
	return TelegramConfig{
		NotifyOnCreate:       true,
		NotifyOnDelete:       true,
		NotifyOnStatusChange: true,
		NotifyDaysBefore:     1,
	}
}

// CanSend reports whether the dispatcher is allowed to attempt delivery.
func (c TelegramConfig) CanSend() bool {
	return c.IsActive && c.BotToken != "" && c.ChatID != ""
}
