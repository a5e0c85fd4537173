// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// RepositorySet bundles the repositories that participate in a single
// storage transaction. Inside a unit of work every repository operates on
// the same underlying transaction, so either all writes commit or none do.
type RepositorySet struct {
	Accounts     AccountRepository
	Categories   CategoryRepository
	Budgets      BudgetRepository
	Transactions TransactionRepository
	Goals        GoalRepository
	Ledger       LedgerRepository
}

// UnitOfWork executes a function within one storage transaction. If the
// function returns an error the transaction is rolled back, otherwise it
// is committed. This is the atomicity boundary for the reconciliation
// engine's multi-entity writes.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos RepositorySet) error) error
}
