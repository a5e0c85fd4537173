// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields keep their stored value.
type UpdateTransactionInput struct {
	TransactionID     uuid.UUID
	UserID            uuid.UUID
	Type              *entity.TransactionType
	AccountID         *uuid.UUID
	CategoryID        *uuid.UUID
	ClearCategory     bool
	Amount            *decimal.Decimal
	Description       *string
	Date              *time.Time
	Status            *entity.TransactionStatus
	IsRecurring       *bool
	RecurringInterval *entity.RecurringInterval
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
	Outcome     *reconciliation.Outcome
}

// UpdateTransactionUseCase handles transaction update. The engine treats
// the update as reverse-then-apply so amount, account, category, type and
// status changes all land through the same atomic path.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	engine          *reconciliation.Engine
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	engine *reconciliation.Engine,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		engine:          engine,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	existing, err := uc.findOwned(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if input.Type != nil {
		updated.Type = *input.Type
	}
	if input.AccountID != nil {
		updated.AccountID = *input.AccountID
	}
	if input.ClearCategory {
		updated.CategoryID = nil
	} else if input.CategoryID != nil {
		updated.CategoryID = input.CategoryID
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Date != nil {
		updated.Date = *input.Date
	}
	if input.Status != nil {
		updated.Status = *input.Status
	}
	if input.IsRecurring != nil {
		updated.IsRecurring = *input.IsRecurring
	}
	if input.RecurringInterval != nil {
		updated.RecurringInterval = input.RecurringInterval
	}
	if !updated.IsRecurring {
		updated.RecurringInterval = nil
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.validate(ctx, input.UserID, &updated); err != nil {
		return nil, err
	}

	outcome, err := uc.engine.ApplyTransactionUpdate(ctx, existing, &updated)
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: &updated,
		Outcome:     outcome,
	}, nil
}

func (uc *UpdateTransactionUseCase) findOwned(ctx context.Context, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
	tx, err := uc.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if tx.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return tx, nil
}

func (uc *UpdateTransactionUseCase) validate(ctx context.Context, userID uuid.UUID, tx *entity.Transaction) error {
	if err := validateTransactionFields(tx.Type, tx.Amount, tx.Status, tx.IsRecurring, tx.RecurringInterval); err != nil {
		return err
	}

	account, err := uc.accountRepo.FindByID(ctx, tx.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFoundForTransaction,
			)
		}
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to use this account",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if tx.CategoryID == nil {
		if tx.Type == entity.TransactionTypeExpense {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryRequiredForExpense,
				"expense transactions require a category",
				domainerror.ErrCategoryRequiredForExpense,
			)
		}
		return nil
	}

	category, err := uc.categoryRepo.FindByID(ctx, *tx.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to use this category",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	if string(category.Type) != string(tx.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("a %s transaction cannot use a %s category", tx.Type, category.Type),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return nil
}
