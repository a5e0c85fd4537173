// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Type           string  `json:"type" binding:"required,oneof=checking savings current"`
	OpeningBalance float64 `json:"opening_balance"`
	IsDefault      bool    `json:"is_default"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name    *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type    *string  `json:"type,omitempty" binding:"omitempty,oneof=checking savings current"`
	Balance *float64 `json:"balance,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Type:      string(account.Type),
		Balance:   account.Balance.String(),
		IsDefault: account.IsDefault,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountListResponse converts a list of accounts to response DTOs.
func ToAccountListResponse(accounts []*entity.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return responses
}
