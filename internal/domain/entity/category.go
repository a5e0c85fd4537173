// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Category represents a transaction category in the FinanceMate system.
// OnTrack is a derived flag maintained by the reconciliation engine for
// expense categories with an associated budget; it is never set directly.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	OnTrack   bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity. New categories start on track
// since no spending has been recorded against them yet.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		OnTrack:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CategoryWithBudget represents a category together with its budget, if any.
type CategoryWithBudget struct {
	Category *Category
	Budget   *Budget
}
