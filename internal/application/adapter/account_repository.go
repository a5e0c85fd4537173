// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByIDForUpdate retrieves an account by ID with a row-level write
	// lock when executed inside a storage transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUserID retrieves all accounts for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// UpdateBalance persists a new balance for the account. Only the
	// reconciliation engine may call this.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// ClearDefault clears the default flag on all accounts of a user.
	ClearDefault(ctx context.Context, userID uuid.UUID) error

	// Delete soft-deletes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
