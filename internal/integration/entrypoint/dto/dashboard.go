// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/yasasArt/financemate-backend/internal/application/usecase/dashboard"
)

// DashboardSummaryResponse represents the data payload for the dashboard summary.
type DashboardSummaryResponse struct {
	TotalBalance  string                    `json:"total_balance"`
	IncomeTotal   string                    `json:"income_total"`
	ExpenseTotal  string                    `json:"expense_total"`
	NetTotal      string                    `json:"net_total"`
	TopCategories []CategorySpendingResponse `json:"top_categories"`
	Budgets       []BudgetSummaryResponse   `json:"budgets"`
	GoalCount     int                       `json:"goal_count"`
}

// CategorySpendingResponse represents spending aggregated for one category.
type CategorySpendingResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// BudgetSummaryResponse represents a budget's state on the dashboard.
type BudgetSummaryResponse struct {
	BudgetID       string `json:"budget_id"`
	CategoryID     string `json:"category_id"`
	Limit          string `json:"limit"`
	RemainingLimit string `json:"remaining_limit"`
	Status         string `json:"status"`
	SpentPercent   int64  `json:"spent_percent"`
}

// ToDashboardSummaryResponse converts a dashboard summary output to its DTO.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	topCategories := make([]CategorySpendingResponse, len(output.TopCategories))
	for i, spending := range output.TopCategories {
		topCategories[i] = CategorySpendingResponse{
			CategoryID:   spending.CategoryID.String(),
			CategoryName: spending.CategoryName,
			Total:        spending.Total.String(),
		}
	}

	budgets := make([]BudgetSummaryResponse, len(output.Budgets))
	for i, summary := range output.Budgets {
		budgets[i] = BudgetSummaryResponse{
			BudgetID:       summary.BudgetID.String(),
			CategoryID:     summary.CategoryID.String(),
			Limit:          summary.Limit.String(),
			RemainingLimit: summary.RemainingLimit.String(),
			Status:         string(summary.Status),
			SpentPercent:   summary.SpentPercent,
		}
	}

	return DashboardSummaryResponse{
		TotalBalance:  output.TotalBalance.String(),
		IncomeTotal:   output.IncomeTotal.String(),
		ExpenseTotal:  output.ExpenseTotal.String(),
		NetTotal:      output.NetTotal.String(),
		TopCategories: topCategories,
		Budgets:       budgets,
		GoalCount:     output.GoalCount,
	}
}
