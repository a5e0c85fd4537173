// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending ceiling attached to exactly one expense
// category. RemainingLimit starts at Limit and is decremented by the
// reconciliation engine as expenses are applied. It is never clamped:
// overspending drives it negative, which surfaces as the over-limit
// status rather than an error.
type Budget struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CategoryID     uuid.UUID
	Limit          decimal.Decimal
	RemainingLimit decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity with the remaining limit
// initialized to the full limit.
func NewBudget(userID, categoryID uuid.UUID, limit decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:             uuid.New(),
		UserID:         userID,
		CategoryID:     categoryID,
		Limit:          limit,
		RemainingLimit: limit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Spent returns the amount consumed from the budget so far.
func (b *Budget) Spent() decimal.Decimal {
	return b.Limit.Sub(b.RemainingLimit)
}
