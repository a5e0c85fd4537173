// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Status     *entity.TransactionStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// CategorySpending represents total completed expense spending for one category.
type CategorySpending struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category by ID.
	FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// GetTotals calculates income/expense totals for completed transactions
	// matching the filter.
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)

	// GetSpendingByCategory aggregates completed expense totals per category
	// for a user, ordered by total descending.
	GetSpendingByCategory(ctx context.Context, userID uuid.UUID, limit int) ([]*CategorySpending, error)

	// SumCompletedByAccount returns the signed sum of completed transactions
	// for an account (income positive, expenses negative).
	SumCompletedByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// SumCompletedExpensesByCategory returns the total completed expense
	// amount recorded against a category.
	SumCompletedExpensesByCategory(ctx context.Context, categoryID uuid.UUID) (decimal.Decimal, error)

	// CountByAccount returns how many transactions reference the account.
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
