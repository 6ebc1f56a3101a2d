package contracts

import (
	"strings"
	"time"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Status is the signature state of a contract.
type Status string

// Contract statuses.
const (
	StatusNotSigned Status = shared.StatusNotSigned
	StatusSigned    Status = shared.StatusSigned
)

// ParseStatus accepts the canonical spellings case-insensitively, plus not_signed and not-signed.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch strings.Join(strings.Fields(norm), " ") {
	case "signed":
		return StatusSigned, nil
	case "not signed", "notsigned", "unsigned":
		return StatusNotSigned, nil
	}
	return "", shared.NewValidationError("status", "must be one of 'Signed' or 'Not Signed', got %q", s)
}

// CanTransitionTo reports whether a contract may move from s to next.
// A signed contract stays signed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusNotSigned && next == StatusSigned
}

// Contract is an agreement with a client.
type Contract struct {
	ID              int64
	ClientID        int64
	ClientName      string
	SalesContactID  *int64
	SalesContact    string
	TotalAmount     Money
	AmountRemaining Money
	Status          Status
	DateCreated     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Changes lists the columns an update touches. Nil fields are left alone.
type Changes struct {
	TotalAmount     *Money
	AmountRemaining *Money
	Status          *Status
	SalesContactID  *int64
}

// Empty reports whether no column would change.
func (c Changes) Empty() bool {
	return c.TotalAmount == nil && c.AmountRemaining == nil && c.Status == nil && c.SalesContactID == nil
}

// ListFilter narrows contract listings.
type ListFilter struct {
	Status         *Status
	ClientID       *int64
	SalesContactID *int64
	// Unpaid keeps contracts with amount_remaining > 0.
	Unpaid bool
}
