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

// CreateTransactionInput represents the input for transaction creation.
// A non-nil ID pins the transaction's identity, so a retried request
// collides with the first attempt instead of creating a duplicate.
type CreateTransactionInput struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              entity.TransactionType
	AccountID         uuid.UUID
	CategoryID        *uuid.UUID
	Amount            decimal.Decimal
	Description       string
	Date              time.Time
	Status            entity.TransactionStatus
	IsRecurring       bool
	RecurringInterval *entity.RecurringInterval
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Outcome     *reconciliation.Outcome
}

// CreateTransactionUseCase handles transaction creation. Validation runs
// here; the actual persistence and aggregate updates are delegated to the
// reconciliation engine so they land atomically.
type CreateTransactionUseCase struct {
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
	engine       *reconciliation.Engine
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	engine *reconciliation.Engine,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		engine:       engine,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := uc.validate(ctx, input.UserID, input.Type, input.AccountID, input.CategoryID, input.Amount, input.Status, input.IsRecurring, input.RecurringInterval); err != nil {
		return nil, err
	}

	tx := entity.NewTransaction(
		input.UserID,
		input.Type,
		input.AccountID,
		input.CategoryID,
		input.Amount,
		input.Description,
		input.Date,
		input.Status,
		input.IsRecurring,
		input.RecurringInterval,
	)
	if input.ID != uuid.Nil {
		tx.ID = input.ID
	}

	outcome, err := uc.engine.ApplyTransactionCreate(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{
		Transaction: tx,
		Outcome:     outcome,
	}, nil
}

func (uc *CreateTransactionUseCase) validate(
	ctx context.Context,
	userID uuid.UUID,
	txType entity.TransactionType,
	accountID uuid.UUID,
	categoryID *uuid.UUID,
	amount decimal.Decimal,
	status entity.TransactionStatus,
	isRecurring bool,
	recurringInterval *entity.RecurringInterval,
) error {
	if err := validateTransactionFields(txType, amount, status, isRecurring, recurringInterval); err != nil {
		return err
	}

	// The account must exist and belong to the caller
	account, err := uc.accountRepo.FindByID(ctx, accountID)
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

	return uc.validateCategory(ctx, userID, txType, categoryID)
}

// validateCategory checks the category rules: expenses require a category,
// and the category's type must match the transaction's.
func (uc *CreateTransactionUseCase) validateCategory(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, categoryID *uuid.UUID) error {
	if categoryID == nil {
		if txType == entity.TransactionTypeExpense {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryRequiredForExpense,
				"expense transactions require a category",
				domainerror.ErrCategoryRequiredForExpense,
			)
		}
		return nil
	}

	category, err := uc.categoryRepo.FindByID(ctx, *categoryID)
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
	if string(category.Type) != string(txType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("a %s transaction cannot use a %s category", txType, category.Type),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return nil
}

// validateTransactionFields checks the field-level rules shared by create
// and update.
func validateTransactionFields(
	txType entity.TransactionType,
	amount decimal.Decimal,
	status entity.TransactionStatus,
	isRecurring bool,
	recurringInterval *entity.RecurringInterval,
) error {
	if txType != entity.TransactionTypeExpense && txType != entity.TransactionTypeIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if status != entity.TransactionStatusPending && status != entity.TransactionStatusCompleted {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"transaction status must be 'pending' or 'completed'",
			domainerror.ErrInvalidTransactionStatus,
		)
	}
	if isRecurring {
		if recurringInterval == nil || !isValidRecurringInterval(*recurringInterval) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidRecurringInterval,
				"recurring transactions require an interval of 'daily', 'weekly', 'monthly' or 'yearly'",
				domainerror.ErrInvalidRecurringInterval,
			)
		}
	}
	return nil
}

// isValidRecurringInterval validates the recurring interval.
func isValidRecurringInterval(interval entity.RecurringInterval) bool {
	switch interval {
	case entity.RecurringIntervalDaily,
		entity.RecurringIntervalWeekly,
		entity.RecurringIntervalMonthly,
		entity.RecurringIntervalYearly:
		return true
	}
	return false
}
