// Package account contains wallet account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase handles account deletion logic. An account that
// transactions still reference cannot be removed, since dropping it would
// orphan the ledger history behind its balance.
type DeleteAccountUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository, transactionRepo adapter.TransactionRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if _, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	count, err := uc.transactionRepo.CountByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountHasTransactions,
			fmt.Sprintf("account is referenced by %d transactions", count),
			domainerror.ErrAccountHasTransactions,
		)
	}

	if err := uc.accountRepo.Delete(ctx, input.AccountID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}
