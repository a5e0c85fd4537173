// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEventKind distinguishes postings that apply a transaction's effect
// from postings that reverse it.
type LedgerEventKind string

const (
	LedgerEventApply   LedgerEventKind = "apply"
	LedgerEventReverse LedgerEventKind = "reverse"
)

// LedgerEvent is an append-only signed posting recorded by the
// reconciliation engine. Every mutation of an account balance or a budget
// remaining limit is backed by exactly one event, so both aggregates can
// be recomputed as a fold over the log. The pair (TransactionID, Kind,
// Sequence) is unique, which makes re-applying a transaction a detectable
// no-op.
type LedgerEvent struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	BudgetID      *uuid.UUID // Set when the posting also touched a budget
	Amount        decimal.Decimal
	Kind          LedgerEventKind
	Sequence      int // Ordinal of this posting within one apply/reverse of the transaction
	CreatedAt     time.Time
}

// NewLedgerEvent creates a new ledger event posting.
func NewLedgerEvent(transactionID, accountID uuid.UUID, budgetID *uuid.UUID, amount decimal.Decimal, kind LedgerEventKind, sequence int) *LedgerEvent {
	return &LedgerEvent{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     accountID,
		BudgetID:      budgetID,
		Amount:        amount,
		Kind:          kind,
		Sequence:      sequence,
		CreatedAt:     time.Now().UTC(),
	}
}
