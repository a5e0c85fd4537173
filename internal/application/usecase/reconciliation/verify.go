package reconciliation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// VerifyAccountOutput reports whether an account's stored balance matches
// the signed sum of its completed transactions.
type VerifyAccountOutput struct {
	AccountID       uuid.UUID
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Consistent      bool
}

// VerifyBudgetOutput reports whether a budget's stored remaining limit
// matches the limit minus completed spending in its category.
type VerifyBudgetOutput struct {
	BudgetID          uuid.UUID
	StoredRemaining   decimal.Decimal
	ComputedRemaining decimal.Decimal
	Consistent        bool
}

// VerifyAccount recomputes an account's balance from the transaction log
// and compares it with the stored aggregate. It never mutates state.
func (e *Engine) VerifyAccount(ctx context.Context, accountID uuid.UUID) (*VerifyAccountOutput, error) {
	output := &VerifyAccountOutput{AccountID: accountID}
	err := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		account, err := repos.Accounts.FindByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		computed, err := repos.Transactions.SumCompletedByAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to sum completed transactions: %w", err)
		}
		output.StoredBalance = account.Balance
		output.ComputedBalance = computed
		output.Consistent = account.Balance.Equal(computed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// VerifyBudget recomputes a budget's remaining limit from completed
// expense transactions in its category and compares it with the stored
// aggregate.
func (e *Engine) VerifyBudget(ctx context.Context, budgetID uuid.UUID) (*VerifyBudgetOutput, error) {
	output := &VerifyBudgetOutput{BudgetID: budgetID}
	err := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		budget, err := repos.Budgets.FindByID(ctx, budgetID)
		if err != nil {
			return fmt.Errorf("failed to load budget: %w", err)
		}
		spent, err := repos.Transactions.SumCompletedExpensesByCategory(ctx, budget.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to sum completed expenses: %w", err)
		}
		output.StoredRemaining = budget.RemainingLimit
		output.ComputedRemaining = budget.Limit.Sub(spent)
		output.Consistent = budget.RemainingLimit.Equal(output.ComputedRemaining)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// RebuildAccount rewrites an account's balance from the transaction log.
// This is the recovery path after a PartialFailureError left the stored
// aggregate inconsistent.
func (e *Engine) RebuildAccount(ctx context.Context, accountID uuid.UUID) (*VerifyAccountOutput, error) {
	output := &VerifyAccountOutput{AccountID: accountID}
	err := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		computed, err := repos.Transactions.SumCompletedByAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to sum completed transactions: %w", err)
		}
		output.StoredBalance = account.Balance
		output.ComputedBalance = computed
		output.Consistent = account.Balance.Equal(computed)
		if output.Consistent {
			return nil
		}
		if err := repos.Accounts.UpdateBalance(ctx, accountID, computed); err != nil {
			return fmt.Errorf("failed to rewrite account balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// RebuildBudget rewrites a budget's remaining limit from completed expense
// transactions and refreshes the category's derived on-track flag.
func (e *Engine) RebuildBudget(ctx context.Context, budgetID uuid.UUID) (*VerifyBudgetOutput, error) {
	output := &VerifyBudgetOutput{BudgetID: budgetID}
	err := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		budget, err := repos.Budgets.FindByIDForUpdate(ctx, budgetID)
		if err != nil {
			return fmt.Errorf("failed to load budget: %w", err)
		}
		spent, err := repos.Transactions.SumCompletedExpensesByCategory(ctx, budget.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to sum completed expenses: %w", err)
		}
		output.StoredRemaining = budget.RemainingLimit
		output.ComputedRemaining = budget.Limit.Sub(spent)
		output.Consistent = budget.RemainingLimit.Equal(output.ComputedRemaining)
		if output.Consistent {
			return nil
		}
		if err := repos.Budgets.UpdateRemainingLimit(ctx, budgetID, output.ComputedRemaining); err != nil {
			return fmt.Errorf("failed to rewrite budget remaining limit: %w", err)
		}
		status := valueobject.ClassifyBudget(budget.Limit, output.ComputedRemaining)
		if err := repos.Categories.SetOnTrack(ctx, budget.CategoryID, valueobject.OnTrack(status)); err != nil {
			return fmt.Errorf("failed to refresh category on-track flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
