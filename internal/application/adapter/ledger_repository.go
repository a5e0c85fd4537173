// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// LedgerRepository defines the interface for the append-only posting log
// maintained by the reconciliation engine.
type LedgerRepository interface {
	// Append records a new posting. Returns ErrAlreadyApplied when a
	// posting with the same (transaction, kind, sequence) already exists.
	Append(ctx context.Context, event *entity.LedgerEvent) error

	// FindByTransaction retrieves all postings recorded for a transaction,
	// ordered by creation time.
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*entity.LedgerEvent, error)

	// CountByTransactionAndKind returns how many postings of the given kind
	// exist for a transaction.
	CountByTransactionAndKind(ctx context.Context, transactionID uuid.UUID, kind entity.LedgerEventKind) (int64, error)

	// SumByAccount folds the log into the net amount posted to an account.
	SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// SumByBudget folds the log into the net amount posted to a budget.
	SumByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error)
}
