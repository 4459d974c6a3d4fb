package models

import (
	"fmt"
	"time"
)

// CheckStatus is the lifecycle status of a check. The stored value is the
// human-readable Persian label, matching the persisted JSON format.
type CheckStatus string

const (
	StatusPending     CheckStatus = "در انتظار"
	StatusPaid        CheckStatus = "پاس شده"
	StatusBounced     CheckStatus = "برگشتی"
	StatusCancelled   CheckStatus = "ابطال شده"
	StatusLegalAction CheckStatus = "اقدام حقوقی"
)

// Valid reports whether s is one of the known statuses.
func (s CheckStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusBounced, StatusCancelled, StatusLegalAction:
		return true
	}
	return false
}

// statusKeys maps CLI-friendly keys to statuses. The Persian labels are also
// accepted as-is.
var statusKeys = map[string]CheckStatus{
	"pending":   StatusPending,
	"paid":      StatusPaid,
	"bounced":   StatusBounced,
	"cancelled": StatusCancelled,
	"legal":     StatusLegalAction,
}

// ParseStatus resolves a status from either an English key (pending, paid,
// bounced, cancelled, legal) or the stored Persian label.
func ParseStatus(s string) (CheckStatus, error) {
	if st, ok := statusKeys[s]; ok {
		return st, nil
	}
	if st := CheckStatus(s); st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown check status %q", s)
}

// Check is a post-dated check record. Timestamps are set by the ledger
// service, never by callers.
type Check struct {
	ID               string      `json:"id"`
	Amount           int64       `json:"amount"`
	DueDate          time.Time   `json:"dueDate"`
	Issuer           string      `json:"issuer"`
	IssuerNationalID string      `json:"issuerNationalId"`
	Recipient        string      `json:"recipient"`
	BankName         string      `json:"bankName"`
	BranchName       string      `json:"branchName"`
	CheckNumber      string      `json:"checkNumber"`
	SayadID          string      `json:"sayadId"`
	Status           CheckStatus `json:"status"`
	Description      string      `json:"description"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// SayadIDLength is the mandatory length of a national check-tracking id.
const SayadIDLength = 16

// ValidationError is a user-facing rejection raised before a check reaches
// the ledger service.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate enforces the caller-layer rules: a non-empty sayad id must be
// exactly 16 characters, the amount non-negative, the issuer non-empty and
// the status known. The ledger service itself does not re-validate.
func (c *Check) Validate() error {
	if c.SayadID != "" && len([]rune(c.SayadID)) != SayadIDLength {
		return &ValidationError{Field: "sayadId", Reason: fmt.Sprintf("must be exactly %d characters", SayadIDLength)}
	}
	if c.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if c.Issuer == "" {
		return &ValidationError{Field: "issuer", Reason: "must not be empty"}
	}
	if c.Status != "" && !c.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", string(c.Status))}
	}
	return nil
}
