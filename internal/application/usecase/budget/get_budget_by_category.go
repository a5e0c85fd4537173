// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// GetBudgetByCategoryInput represents the input for a category budget lookup.
type GetBudgetByCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// GetBudgetByCategoryOutput represents the output of a category budget lookup.
type GetBudgetByCategoryOutput struct {
	Budget *BudgetWithStatus
}

// GetBudgetByCategoryUseCase handles budget lookup by category.
type GetBudgetByCategoryUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetBudgetByCategoryUseCase creates a new GetBudgetByCategoryUseCase instance.
func NewGetBudgetByCategoryUseCase(budgetRepo adapter.BudgetRepository) *GetBudgetByCategoryUseCase {
	return &GetBudgetByCategoryUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute retrieves the budget attached to a category.
func (uc *GetBudgetByCategoryUseCase) Execute(ctx context.Context, input GetBudgetByCategoryInput) (*GetBudgetByCategoryOutput, error) {
	budget, err := uc.budgetRepo.FindByCategoryID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"this category has no budget",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to view this budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	return &GetBudgetByCategoryOutput{
		Budget: &BudgetWithStatus{
			Budget: budget,
			Status: valueobject.ClassifyBudget(budget.Limit, budget.RemainingLimit),
		},
	}, nil
}
