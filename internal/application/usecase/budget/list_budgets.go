// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// BudgetWithStatus pairs a budget with its derived classification.
type BudgetWithStatus struct {
	Budget *entity.Budget
	Status valueobject.BudgetStatus
}

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetWithStatus
}

// ListBudgetsUseCase handles budget listing logic.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute lists the user's budgets with their current classification.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	output := &ListBudgetsOutput{
		Budgets: make([]*BudgetWithStatus, 0, len(budgets)),
	}
	for _, b := range budgets {
		output.Budgets = append(output.Budgets, &BudgetWithStatus{
			Budget: b,
			Status: valueobject.ClassifyBudget(b.Limit, b.RemainingLimit),
		})
	}
	return output, nil
}
