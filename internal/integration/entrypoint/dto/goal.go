// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/goal"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name                 string  `json:"name" binding:"required,min=1,max=100"`
	Description          string  `json:"description,omitempty"`
	TotalAmount          float64 `json:"total_amount" binding:"required"`
	AccountID            string  `json:"account_id" binding:"required,uuid"`
	ContributionAmount   float64 `json:"contribution_amount" binding:"required"`
	ContributionInterval string  `json:"contribution_interval" binding:"required,oneof=daily weekly monthly"`
	NextContributionDate string  `json:"next_contribution_date" binding:"required"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name                 *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description          *string  `json:"description,omitempty"`
	TotalAmount          *float64 `json:"total_amount,omitempty"`
	ContributionAmount   *float64 `json:"contribution_amount,omitempty"`
	ContributionInterval *string  `json:"contribution_interval,omitempty" binding:"omitempty,oneof=daily weekly monthly"`
	NextContributionDate *string  `json:"next_contribution_date,omitempty"`
}

// ContributeGoalRequest represents the request body for a manual contribution.
// Amount zero falls back to the goal's configured contribution amount.
type ContributeGoalRequest struct {
	Amount float64 `json:"amount"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	TotalAmount          string    `json:"total_amount"`
	Balance              string    `json:"balance"`
	Progress             string    `json:"progress,omitempty"`
	AccountID            string    `json:"account_id"`
	ContributionAmount   string    `json:"contribution_amount"`
	ContributionInterval string    `json:"contribution_interval"`
	NextContributionDate string    `json:"next_contribution_date"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ContributionResponse represents the data payload after a manual contribution.
type ContributionResponse struct {
	Goal        GoalResponse        `json:"goal"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:                   g.ID.String(),
		Name:                 g.Name,
		Description:          g.Description,
		TotalAmount:          g.TotalAmount.String(),
		Balance:              g.Balance.String(),
		AccountID:            g.AccountID.String(),
		ContributionAmount:   g.ContributionAmount.String(),
		ContributionInterval: string(g.ContributionInterval),
		NextContributionDate: g.NextContributionDate.Format("2006-01-02"),
		Status:               string(g.Status),
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

// ToGoalWithProgressResponse converts a goal with its computed progress to a
// GoalResponse DTO.
func ToGoalWithProgressResponse(gwp *goal.GoalWithProgress) GoalResponse {
	response := ToGoalResponse(gwp.Goal)
	response.Progress = gwp.Progress.String()
	return response
}

// ToGoalListResponse converts a list of goals with progress to response DTOs.
func ToGoalListResponse(goals []*goal.GoalWithProgress) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i, gwp := range goals {
		responses[i] = ToGoalWithProgressResponse(gwp)
	}
	return responses
}
