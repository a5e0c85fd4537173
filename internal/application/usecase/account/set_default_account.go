// Package account contains wallet account-related use cases.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// SetDefaultAccountInput represents the input for marking an account as default.
type SetDefaultAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// SetDefaultAccountOutput represents the output of marking an account as default.
type SetDefaultAccountOutput struct {
	Account *entity.Account
}

// SetDefaultAccountUseCase handles the default account switch. At most
// one of a user's accounts carries the default flag.
type SetDefaultAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewSetDefaultAccountUseCase creates a new SetDefaultAccountUseCase instance.
func NewSetDefaultAccountUseCase(accountRepo adapter.AccountRepository) *SetDefaultAccountUseCase {
	return &SetDefaultAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute marks the account as the user's default.
func (uc *SetDefaultAccountUseCase) Execute(ctx context.Context, input SetDefaultAccountInput) (*SetDefaultAccountOutput, error) {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.ClearDefault(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to clear default account: %w", err)
	}

	account.IsDefault = true
	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to set default account: %w", err)
	}

	return &SetDefaultAccountOutput{
		Account: account,
	}, nil
}
