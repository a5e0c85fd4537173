// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic. Deleting a
// category also removes its budget; both deletions share one storage
// transaction so a budget is never left pointing at a missing category.
type DeleteCategoryUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(uow adapter.UnitOfWork) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		uow: uow,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		category, err := repos.Categories.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFound,
				)
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		if category.UserID != input.UserID {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeNotAuthorizedCategory,
				"not authorized to delete this category",
				domainerror.ErrNotAuthorizedToModifyCategory,
			)
		}

		// Transactions keep their category reference for reporting, so a
		// referenced category cannot be removed.
		count, err := repos.Categories.CountTransactions(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to count category transactions: %w", err)
		}
		if count > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryHasTransactions,
				fmt.Sprintf("category is referenced by %d transactions", count),
				domainerror.ErrCategoryHasTransactions,
			)
		}

		// Budget first, then the category itself.
		budget, err := repos.Budgets.FindByCategoryID(ctx, input.CategoryID)
		if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return fmt.Errorf("failed to find category budget: %w", err)
		}
		if budget != nil {
			if err := repos.Budgets.Delete(ctx, budget.ID); err != nil {
				return fmt.Errorf("failed to delete category budget: %w", err)
			}
		}

		if err := repos.Categories.Delete(ctx, input.CategoryID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}
