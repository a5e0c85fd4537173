// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// DeleteBudgetOutput represents the output of budget deletion.
type DeleteBudgetOutput struct {
	Success bool
}

// DeleteBudgetUseCase handles budget deletion logic. Removing a budget
// puts the category back in the unbudgeted state, which reports as on
// track.
type DeleteBudgetUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(uow adapter.UnitOfWork) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		uow: uow,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) (*DeleteBudgetOutput, error) {
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		budget, err := repos.Budgets.FindByID(ctx, input.BudgetID)
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
		if budget.UserID != input.UserID {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeNotAuthorizedBudget,
				"not authorized to delete this budget",
				domainerror.ErrNotAuthorizedToModifyBudget,
			)
		}

		if err := repos.Budgets.Delete(ctx, input.BudgetID); err != nil {
			return fmt.Errorf("failed to delete budget: %w", err)
		}

		// Without a budget the category has nothing to be off track against.
		if err := repos.Categories.SetOnTrack(ctx, budget.CategoryID, true); err != nil {
			return fmt.Errorf("failed to reset category on-track flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteBudgetOutput{
		Success: true,
	}, nil
}
