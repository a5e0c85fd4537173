// Package valueobject contains domain value objects for the FinanceMate system.
package valueobject

import (
	"github.com/shopspring/decimal"
)

// BudgetStatus is the three-tier classification of budget consumption.
type BudgetStatus string

const (
	// BudgetStatusOnTrack means 90% or less of the budget has been spent.
	BudgetStatusOnTrack BudgetStatus = "on-track"
	// BudgetStatusNeedAttention means spending is above 90% but below 100%.
	BudgetStatusNeedAttention BudgetStatus = "need-attention"
	// BudgetStatusOverLimit means the budget is fully consumed or overspent.
	BudgetStatusOverLimit BudgetStatus = "over-limit"
	// BudgetStatusNoBudget is the sentinel returned when the limit is not
	// positive, so no meaningful percentage can be derived.
	BudgetStatusNoBudget BudgetStatus = "no-budget"
)

var hundred = decimal.NewFromInt(100)

// ClassifyBudget derives a budget status from its limit and remaining
// limit. The percentage spent is rounded to the nearest integer before the
// thresholds are checked, so 87.5% rounds to 88 and stays on track, while
// the need-attention band is strictly above 90 and strictly below 100.
// RemainingLimit may be negative; overspending classifies as over-limit,
// never as an error.
func ClassifyBudget(limit, remainingLimit decimal.Decimal) BudgetStatus {
	if limit.LessThanOrEqual(decimal.Zero) {
		return BudgetStatusNoBudget
	}

	percentage := SpentPercentage(limit, remainingLimit)
	switch {
	case percentage >= 100:
		return BudgetStatusOverLimit
	case percentage > 90:
		return BudgetStatusNeedAttention
	default:
		return BudgetStatusOnTrack
	}
}

// SpentPercentage returns the rounded integer percentage of the budget
// consumed: round((limit - remainingLimit) / limit * 100). A non-positive
// limit yields 0.
func SpentPercentage(limit, remainingLimit decimal.Decimal) int64 {
	if limit.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	spent := limit.Sub(remainingLimit)
	return spent.Div(limit).Mul(hundred).Round(0).IntPart()
}

// OnTrack reports whether a budget in the given state should mark its
// category as on track. Every status other than over-limit counts as on
// track.
func OnTrack(status BudgetStatus) bool {
	return status != BudgetStatusOverLimit
}
