// Package valueobject contains domain value objects for the FinanceMate system.
package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		name           string
		limit          string
		remainingLimit string
		expected       BudgetStatus
	}{
		{
			name:           "untouched budget is on track",
			limit:          "650",
			remainingLimit: "650",
			expected:       BudgetStatusOnTrack,
		},
		{
			name:           "75 percent spent is on track",
			limit:          "650",
			remainingLimit: "163",
			expected:       BudgetStatusOnTrack,
		},
		{
			name:           "87.5 percent rounds to 88 and stays on track",
			limit:          "400",
			remainingLimit: "50",
			expected:       BudgetStatusOnTrack,
		},
		{
			name:           "exactly 90 percent is on track",
			limit:          "100",
			remainingLimit: "10",
			expected:       BudgetStatusOnTrack,
		},
		{
			name:           "91 percent needs attention",
			limit:          "100",
			remainingLimit: "9",
			expected:       BudgetStatusNeedAttention,
		},
		{
			name:           "90.4 percent rounds down to 90 and stays on track",
			limit:          "1000",
			remainingLimit: "96",
			expected:       BudgetStatusOnTrack,
		},
		{
			name:           "90.5 percent rounds up to 91 and needs attention",
			limit:          "1000",
			remainingLimit: "95",
			expected:       BudgetStatusNeedAttention,
		},
		{
			name:           "99 percent needs attention",
			limit:          "100",
			remainingLimit: "1",
			expected:       BudgetStatusNeedAttention,
		},
		{
			name:           "fully spent is over limit",
			limit:          "500",
			remainingLimit: "0",
			expected:       BudgetStatusOverLimit,
		},
		{
			name:           "overspent budget is over limit",
			limit:          "500",
			remainingLimit: "-120.50",
			expected:       BudgetStatusOverLimit,
		},
		{
			name:           "zero limit yields the no-budget sentinel",
			limit:          "0",
			remainingLimit: "0",
			expected:       BudgetStatusNoBudget,
		},
		{
			name:           "negative limit yields the no-budget sentinel",
			limit:          "-10",
			remainingLimit: "5",
			expected:       BudgetStatusNoBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := decimal.RequireFromString(tt.limit)
			remaining := decimal.RequireFromString(tt.remainingLimit)

			status := ClassifyBudget(limit, remaining)
			if status != tt.expected {
				t.Errorf("ClassifyBudget(%s, %s) = %s, expected %s", tt.limit, tt.remainingLimit, status, tt.expected)
			}
		})
	}
}

func TestSpentPercentage(t *testing.T) {
	tests := []struct {
		name           string
		limit          string
		remainingLimit string
		expected       int64
	}{
		{name: "nothing spent", limit: "650", remainingLimit: "650", expected: 0},
		{name: "partially spent", limit: "650", remainingLimit: "163", expected: 75},
		{name: "87.5 rounds half away from zero", limit: "400", remainingLimit: "50", expected: 88},
		{name: "fully spent", limit: "500", remainingLimit: "0", expected: 100},
		{name: "overspent exceeds 100", limit: "200", remainingLimit: "-100", expected: 150},
		{name: "zero limit", limit: "0", remainingLimit: "0", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := decimal.RequireFromString(tt.limit)
			remaining := decimal.RequireFromString(tt.remainingLimit)

			got := SpentPercentage(limit, remaining)
			if got != tt.expected {
				t.Errorf("SpentPercentage(%s, %s) = %d, expected %d", tt.limit, tt.remainingLimit, got, tt.expected)
			}
		})
	}
}

func TestOnTrack(t *testing.T) {
	tests := []struct {
		status   BudgetStatus
		expected bool
	}{
		{BudgetStatusOnTrack, true},
		{BudgetStatusNeedAttention, true},
		{BudgetStatusNoBudget, true},
		{BudgetStatusOverLimit, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := OnTrack(tt.status); got != tt.expected {
				t.Errorf("OnTrack(%s) = %v, expected %v", tt.status, got, tt.expected)
			}
		})
	}
}
