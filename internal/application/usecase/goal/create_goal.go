// Package goal contains savings goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID               uuid.UUID
	Name                 string
	Description          string
	TotalAmount          decimal.Decimal
	AccountID            uuid.UUID
	ContributionAmount   decimal.Decimal
	ContributionInterval entity.ContributionInterval
	NextContributionDate time.Time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo    adapter.GoalRepository
	accountRepo adapter.AccountRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, accountRepo adapter.AccountRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:    goalRepo,
		accountRepo: accountRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"goal name is required",
			domainerror.ErrGoalNameRequired,
		)
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmount,
			"goal total amount must be greater than zero",
			domainerror.ErrInvalidGoalAmount,
		)
	}
	if !input.ContributionAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}
	if !isValidContributionInterval(input.ContributionInterval) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionInterval,
			"contribution interval must be 'daily', 'weekly' or 'monthly'",
			domainerror.ErrInvalidContributionInterval,
		)
	}

	// The funding account must exist and belong to the caller
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != input.UserID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"not authorized to use this account",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}

	goal := entity.NewGoal(
		input.UserID,
		input.Name,
		input.Description,
		input.TotalAmount,
		input.AccountID,
		input.ContributionAmount,
		input.ContributionInterval,
		input.NextContributionDate,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}

// isValidContributionInterval validates the contribution interval.
func isValidContributionInterval(interval entity.ContributionInterval) bool {
	switch interval {
	case entity.ContributionIntervalDaily,
		entity.ContributionIntervalWeekly,
		entity.ContributionIntervalMonthly:
		return true
	}
	return false
}
