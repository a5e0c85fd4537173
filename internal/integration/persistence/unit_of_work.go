// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on top of a gorm transaction.
// Every repository handed to the callback is bound to the same transaction,
// so the callback's writes commit or roll back together.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work backed by the given database.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{
		db: db,
	}
}

// Execute runs fn inside a single storage transaction.
func (u *unitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos adapter.RepositorySet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := adapter.RepositorySet{
			Accounts:     NewAccountRepository(tx),
			Categories:   NewCategoryRepository(tx),
			Budgets:      NewBudgetRepository(tx),
			Transactions: NewTransactionRepository(tx),
			Goals:        NewGoalRepository(tx),
			Ledger:       NewLedgerRepository(tx),
		}
		return fn(ctx, repos)
	})
}
