// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// VerifyBudgetInput represents the input for a budget consistency check.
type VerifyBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// VerifyBudgetOutput represents the output of a budget consistency check.
type VerifyBudgetOutput struct {
	Report *reconciliation.VerifyBudgetOutput
}

// VerifyBudgetUseCase recomputes a budget's remaining limit from completed
// expenses in its category and reports drift against the stored aggregate.
type VerifyBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	engine     *reconciliation.Engine
}

// NewVerifyBudgetUseCase creates a new VerifyBudgetUseCase instance.
func NewVerifyBudgetUseCase(budgetRepo adapter.BudgetRepository, engine *reconciliation.Engine) *VerifyBudgetUseCase {
	return &VerifyBudgetUseCase{
		budgetRepo: budgetRepo,
		engine:     engine,
	}
}

// Execute performs the consistency check without mutating state.
func (uc *VerifyBudgetUseCase) Execute(ctx context.Context, input VerifyBudgetInput) (*VerifyBudgetOutput, error) {
	if err := checkBudgetOwnership(ctx, uc.budgetRepo, input.BudgetID, input.UserID); err != nil {
		return nil, err
	}

	report, err := uc.engine.VerifyBudget(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	return &VerifyBudgetOutput{Report: report}, nil
}

// RebuildBudgetUseCase rewrites a budget's remaining limit from completed
// expenses and refreshes the category's derived on-track flag.
type RebuildBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	engine     *reconciliation.Engine
}

// NewRebuildBudgetUseCase creates a new RebuildBudgetUseCase instance.
func NewRebuildBudgetUseCase(budgetRepo adapter.BudgetRepository, engine *reconciliation.Engine) *RebuildBudgetUseCase {
	return &RebuildBudgetUseCase{
		budgetRepo: budgetRepo,
		engine:     engine,
	}
}

// Execute rewrites the stored remaining limit when it has drifted.
func (uc *RebuildBudgetUseCase) Execute(ctx context.Context, input VerifyBudgetInput) (*VerifyBudgetOutput, error) {
	if err := checkBudgetOwnership(ctx, uc.budgetRepo, input.BudgetID, input.UserID); err != nil {
		return nil, err
	}

	report, err := uc.engine.RebuildBudget(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	return &VerifyBudgetOutput{Report: report}, nil
}

// checkBudgetOwnership loads a budget and checks it belongs to the caller.
func checkBudgetOwnership(ctx context.Context, budgetRepo adapter.BudgetRepository, budgetID, userID uuid.UUID) error {
	budget, err := budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != userID {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to access this budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}
	return nil
}
