package models

import "time"

// Audit action labels, stored as the human-readable operation names.
const (
	ActionCreate = "ثبت چک جدید"
	ActionEdit   = "ویرایش چک"
	ActionDelete = "حذف چک"
)

// AuditLogEntry is an immutable fact record about one mutating ledger
// operation. CheckID is a weak reference: it may dangle after the check is
// deleted and is never used for cascading.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	CheckID   string    `json:"checkId"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditLogCap is the maximum number of retained audit entries; insertion
// beyond the cap evicts the oldest.
const AuditLogCap = 50
