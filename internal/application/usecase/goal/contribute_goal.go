// Package goal contains savings goal-related use cases.
package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// ContributeGoalInput represents the input for a goal contribution. A
// zero Amount falls back to the goal's configured contribution amount.
type ContributeGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
}

// ContributeGoalOutput represents the output of a goal contribution.
type ContributeGoalOutput struct {
	Goal        *entity.Goal
	Transaction *entity.Transaction
}

// ContributeGoalUseCase handles goal contributions. The contribution is
// recorded as a completed expense transaction through the reconciliation
// engine, so the funding account's balance and history stay consistent.
type ContributeGoalUseCase struct {
	goalRepo adapter.GoalRepository
	engine   *reconciliation.Engine
}

// NewContributeGoalUseCase creates a new ContributeGoalUseCase instance.
func NewContributeGoalUseCase(goalRepo adapter.GoalRepository, engine *reconciliation.Engine) *ContributeGoalUseCase {
	return &ContributeGoalUseCase{
		goalRepo: goalRepo,
		engine:   engine,
	}
}

// Execute performs the goal contribution.
func (uc *ContributeGoalUseCase) Execute(ctx context.Context, input ContributeGoalInput) (*ContributeGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if goal.Status == entity.GoalStatusCompleted {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAlreadyCompleted,
			"this goal has already been completed",
			domainerror.ErrGoalAlreadyCompleted,
		)
	}

	amount := input.Amount
	if amount.IsZero() {
		amount = goal.ContributionAmount
	}
	if !amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}
	// A contribution never overshoots the outstanding balance.
	if amount.GreaterThan(goal.Balance) {
		amount = goal.Balance
	}

	tx, err := uc.engine.ApplyGoalContribution(ctx, goal, amount)
	if err != nil {
		return nil, err
	}

	return &ContributeGoalOutput{
		Goal:        goal,
		Transaction: tx,
	}, nil
}
