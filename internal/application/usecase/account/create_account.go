// Package account contains wallet account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	Type           entity.AccountType
	OpeningBalance decimal.Decimal
	IsDefault      bool
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic. The opening
// balance is the only balance a caller ever writes; afterwards the
// balance moves exclusively through reconciliation.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}
	if !isValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be 'checking', 'savings' or 'current'",
			domainerror.ErrInvalidAccountType,
		)
	}

	// A new default account displaces any existing one.
	if input.IsDefault {
		if err := uc.accountRepo.ClearDefault(ctx, input.UserID); err != nil {
			return nil, fmt.Errorf("failed to clear default account: %w", err)
		}
	}

	account := entity.NewAccount(input.UserID, input.Name, input.Type, input.OpeningBalance, input.IsDefault)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: account,
	}, nil
}

// isValidAccountType validates the account type.
func isValidAccountType(accountType entity.AccountType) bool {
	return accountType == entity.AccountTypeChecking ||
		accountType == entity.AccountTypeSavings ||
		accountType == entity.AccountTypeCurrent
}
