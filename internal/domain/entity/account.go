// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the type of a wallet account.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCurrent  AccountType = "current"
)

// Account represents a balance-holding wallet in the FinanceMate system.
// Balance is only ever mutated through the reconciliation engine; every
// other component treats it as read-only.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity with the given opening balance.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, openingBalance decimal.Decimal, isDefault bool) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   openingBalance,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
