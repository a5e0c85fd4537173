// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// TransactionStatus represents the lifecycle status of a transaction.
// Only completed transactions contribute to account balances and budget
// remaining limits.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// RecurringInterval represents how often a recurring transaction repeats.
type RecurringInterval string

const (
	RecurringIntervalDaily   RecurringInterval = "daily"
	RecurringIntervalWeekly  RecurringInterval = "weekly"
	RecurringIntervalMonthly RecurringInterval = "monthly"
	RecurringIntervalYearly  RecurringInterval = "yearly"
)

// Transaction represents a financial transaction in the FinanceMate system.
// Amount is always positive; the sign of its effect on the account balance
// is determined by Type.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              TransactionType
	AccountID         uuid.UUID
	CategoryID        *uuid.UUID // Required for expenses, optional for income
	Amount            decimal.Decimal
	Description       string
	Date              time.Time
	Status            TransactionStatus
	IsRecurring       bool
	RecurringInterval *RecurringInterval // Present iff IsRecurring
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	accountID uuid.UUID,
	categoryID *uuid.UUID,
	amount decimal.Decimal,
	description string,
	date time.Time,
	status TransactionStatus,
	isRecurring bool,
	recurringInterval *RecurringInterval,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:                uuid.New(),
		UserID:            userID,
		Type:              transactionType,
		AccountID:         accountID,
		CategoryID:        categoryID,
		Amount:            amount,
		Description:       description,
		Date:              date,
		Status:            status,
		IsRecurring:       isRecurring,
		RecurringInterval: recurringInterval,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SignedAmount returns the transaction's effect on its account balance:
// positive for income, negative for expenses.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsCompleted reports whether the transaction contributes to aggregates.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// TransactionWithCategory represents a transaction with its associated
// category resolved, for list responses.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
