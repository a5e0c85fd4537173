// Package goal contains savings goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update. Nil fields keep
// their stored value. The goal balance is not updatable: it only moves
// through contributions.
type UpdateGoalInput struct {
	GoalID               uuid.UUID
	UserID               uuid.UUID
	Name                 *string
	Description          *string
	TotalAmount          *decimal.Decimal
	ContributionAmount   *decimal.Decimal
	ContributionInterval *entity.ContributionInterval
	NextContributionDate *time.Time
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"goal name is required",
				domainerror.ErrGoalNameRequired,
			)
		}
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TotalAmount != nil {
		if !input.TotalAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalAmount,
				"goal total amount must be greater than zero",
				domainerror.ErrInvalidGoalAmount,
			)
		}
		// Raising the target reopens a completed goal; the outstanding
		// balance moves by the same delta as the target.
		delta := input.TotalAmount.Sub(goal.TotalAmount)
		goal.TotalAmount = *input.TotalAmount
		goal.Balance = goal.Balance.Add(delta)
		if goal.Balance.IsNegative() {
			goal.Balance = decimal.Zero
		}
		if goal.Balance.IsZero() {
			goal.Status = entity.GoalStatusCompleted
		} else {
			goal.Status = entity.GoalStatusOngoing
		}
	}
	if input.ContributionAmount != nil {
		if !input.ContributionAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidContributionAmount,
				"contribution amount must be greater than zero",
				domainerror.ErrInvalidContributionAmount,
			)
		}
		goal.ContributionAmount = *input.ContributionAmount
	}
	if input.ContributionInterval != nil {
		if !isValidContributionInterval(*input.ContributionInterval) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidContributionInterval,
				"contribution interval must be 'daily', 'weekly' or 'monthly'",
				domainerror.ErrInvalidContributionInterval,
			)
		}
		goal.ContributionInterval = *input.ContributionInterval
	}
	if input.NextContributionDate != nil {
		goal.NextContributionDate = *input.NextContributionDate
	}

	goal.UpdatedAt = time.Now().UTC()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: goal,
	}, nil
}
