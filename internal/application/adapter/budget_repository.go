// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database. Returns
	// ErrBudgetAlreadyExists when the category already has one.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByIDForUpdate retrieves a budget by ID with a row-level write
	// lock when executed inside a storage transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByCategoryID retrieves the budget attached to a category, or
	// ErrBudgetNotFound when the category has none.
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) (*entity.Budget, error)

	// FindByCategoryIDForUpdate retrieves the category's budget with a
	// row-level write lock when executed inside a storage transaction.
	FindByCategoryIDForUpdate(ctx context.Context, categoryID uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all budgets for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// UpdateRemainingLimit persists a new remaining limit for the budget.
	// Only the reconciliation engine may call this.
	UpdateRemainingLimit(ctx context.Context, id uuid.UUID, remainingLimit decimal.Decimal) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCategoryID checks if a budget exists for the given category.
	ExistsByCategoryID(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
