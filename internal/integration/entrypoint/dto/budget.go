// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Limit      float64 `json:"limit" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Limit float64 `json:"limit" binding:"required"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	CategoryID     string    `json:"category_id"`
	Limit          string    `json:"limit"`
	RemainingLimit string    `json:"remaining_limit"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToBudgetResponse converts a budget with its classified status to a
// BudgetResponse DTO.
func ToBudgetResponse(bws *budget.BudgetWithStatus) BudgetResponse {
	return BudgetResponse{
		ID:             bws.Budget.ID.String(),
		CategoryID:     bws.Budget.CategoryID.String(),
		Limit:          bws.Budget.Limit.String(),
		RemainingLimit: bws.Budget.RemainingLimit.String(),
		Status:         string(bws.Status),
		CreatedAt:      bws.Budget.CreatedAt,
		UpdatedAt:      bws.Budget.UpdatedAt,
	}
}

// ToBudgetListResponse converts a list of classified budgets to response DTOs.
func ToBudgetListResponse(budgets []*budget.BudgetWithStatus) []BudgetResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, bws := range budgets {
		responses[i] = ToBudgetResponse(bws)
	}
	return responses
}
