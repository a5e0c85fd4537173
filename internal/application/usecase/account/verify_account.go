// Package account contains wallet account-related use cases.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
)

// VerifyAccountInput represents the input for an account consistency check.
type VerifyAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// VerifyAccountOutput represents the output of an account consistency check.
type VerifyAccountOutput struct {
	Report *reconciliation.VerifyAccountOutput
}

// VerifyAccountUseCase recomputes an account's balance from its completed
// transactions and reports drift against the stored aggregate.
type VerifyAccountUseCase struct {
	accountRepo adapter.AccountRepository
	engine      *reconciliation.Engine
}

// NewVerifyAccountUseCase creates a new VerifyAccountUseCase instance.
func NewVerifyAccountUseCase(accountRepo adapter.AccountRepository, engine *reconciliation.Engine) *VerifyAccountUseCase {
	return &VerifyAccountUseCase{
		accountRepo: accountRepo,
		engine:      engine,
	}
}

// Execute performs the consistency check without mutating state.
func (uc *VerifyAccountUseCase) Execute(ctx context.Context, input VerifyAccountInput) (*VerifyAccountOutput, error) {
	if _, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	report, err := uc.engine.VerifyAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	return &VerifyAccountOutput{Report: report}, nil
}

// RebuildAccountUseCase rewrites an account's balance from its completed
// transactions. This is the recovery path after a partial failure left
// the stored aggregate inconsistent.
type RebuildAccountUseCase struct {
	accountRepo adapter.AccountRepository
	engine      *reconciliation.Engine
}

// NewRebuildAccountUseCase creates a new RebuildAccountUseCase instance.
func NewRebuildAccountUseCase(accountRepo adapter.AccountRepository, engine *reconciliation.Engine) *RebuildAccountUseCase {
	return &RebuildAccountUseCase{
		accountRepo: accountRepo,
		engine:      engine,
	}
}

// Execute rewrites the stored balance when it has drifted.
func (uc *RebuildAccountUseCase) Execute(ctx context.Context, input VerifyAccountInput) (*VerifyAccountOutput, error) {
	if _, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	report, err := uc.engine.RebuildAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	return &VerifyAccountOutput{Report: report}, nil
}
