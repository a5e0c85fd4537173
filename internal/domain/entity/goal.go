// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContributionInterval represents how often a goal contribution is made.
type ContributionInterval string

const (
	ContributionIntervalDaily   ContributionInterval = "daily"
	ContributionIntervalWeekly  ContributionInterval = "weekly"
	ContributionIntervalMonthly ContributionInterval = "monthly"
)

// GoalStatus represents the lifecycle status of a savings goal.
type GoalStatus string

const (
	GoalStatusOngoing   GoalStatus = "ongoing"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal represents a savings target funded from a wallet account.
// Balance is the amount still needed to reach TotalAmount; it decreases
// as contributions are recorded.
type Goal struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Name                 string
	Description          string
	TotalAmount          decimal.Decimal
	Balance              decimal.Decimal
	AccountID            uuid.UUID
	ContributionAmount   decimal.Decimal
	ContributionInterval ContributionInterval
	NextContributionDate time.Time
	Status               GoalStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity with the full amount outstanding.
func NewGoal(
	userID uuid.UUID,
	name, description string,
	totalAmount decimal.Decimal,
	accountID uuid.UUID,
	contributionAmount decimal.Decimal,
	contributionInterval ContributionInterval,
	nextContributionDate time.Time,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                   uuid.New(),
		UserID:               userID,
		Name:                 name,
		Description:          description,
		TotalAmount:          totalAmount,
		Balance:              totalAmount,
		AccountID:            accountID,
		ContributionAmount:   contributionAmount,
		ContributionInterval: contributionInterval,
		NextContributionDate: nextContributionDate,
		Status:               GoalStatusOngoing,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Progress returns the fraction of the goal that has been funded, in the
// range [0, 1]. A goal with a zero total amount reports full progress.
func (g *Goal) Progress() decimal.Decimal {
	if g.TotalAmount.IsZero() {
		return decimal.NewFromInt(1)
	}
	funded := g.TotalAmount.Sub(g.Balance)
	progress := funded.Div(g.TotalAmount)
	if progress.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return progress
}

// Contribute records a contribution towards the goal, reducing the
// outstanding balance and completing the goal when it reaches zero.
func (g *Goal) Contribute(amount decimal.Decimal) {
	g.Balance = g.Balance.Sub(amount)
	if g.Balance.LessThanOrEqual(decimal.Zero) {
		g.Balance = decimal.Zero
		g.Status = GoalStatusCompleted
	}
	g.UpdatedAt = time.Now().UTC()
}

// AdvanceNextContribution moves the next contribution date forward by one
// interval from the given reference time.
func (g *Goal) AdvanceNextContribution(from time.Time) {
	switch g.ContributionInterval {
	case ContributionIntervalDaily:
		g.NextContributionDate = from.AddDate(0, 0, 1)
	case ContributionIntervalWeekly:
		g.NextContributionDate = from.AddDate(0, 0, 7)
	case ContributionIntervalMonthly:
		g.NextContributionDate = from.AddDate(0, 1, 0)
	}
}
