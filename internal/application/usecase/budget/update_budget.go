// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// UpdateBudgetInput represents the input for budget update.
type UpdateBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
	Limit    decimal.Decimal
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *BudgetWithStatus
}

// UpdateBudgetUseCase handles budget limit changes. Changing the limit
// keeps the spent amount fixed and moves the remaining limit, so the new
// classification reflects spending against the new limit. The budget and
// the category's on-track flag change in one storage transaction.
type UpdateBudgetUseCase struct {
	uow adapter.UnitOfWork
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(uow adapter.UnitOfWork) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		uow: uow,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	if !input.Limit.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetLimitNotPositive,
			"budget limit must be greater than zero",
			domainerror.ErrBudgetLimitNotPositive,
		)
	}

	var (
		budget *entity.Budget
		status valueobject.BudgetStatus
	)
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		var err error
		budget, err = repos.Budgets.FindByID(ctx, input.BudgetID)
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
				"not authorized to modify this budget",
				domainerror.ErrNotAuthorizedToModifyBudget,
			)
		}

		spent := budget.Spent()
		budget.Limit = input.Limit
		budget.RemainingLimit = input.Limit.Sub(spent)
		budget.UpdatedAt = time.Now().UTC()
		if err := repos.Budgets.Update(ctx, budget); err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}

		status = valueobject.ClassifyBudget(budget.Limit, budget.RemainingLimit)
		if err := repos.Categories.SetOnTrack(ctx, budget.CategoryID, valueobject.OnTrack(status)); err != nil {
			return fmt.Errorf("failed to refresh category on-track flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{
		Budget: &BudgetWithStatus{
			Budget: budget,
			Status: status,
		},
	}, nil
}
