// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type              string  `json:"type" binding:"required,oneof=income expense"`
	AccountID         string  `json:"account_id" binding:"required,uuid"`
	CategoryID        *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount            float64 `json:"amount" binding:"required"`
	Description       string  `json:"description" binding:"required,min=1,max=255"`
	Date              string  `json:"date" binding:"required"`
	Status            string  `json:"status" binding:"required,oneof=pending completed"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurringInterval *string `json:"recurring_interval,omitempty" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields keep their stored values; category_id set to null clears it.
type UpdateTransactionRequest struct {
	Type              *string  `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	AccountID         *string  `json:"account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID        *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	ClearCategory     bool     `json:"clear_category,omitempty"`
	Amount            *float64 `json:"amount,omitempty"`
	Description       *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Date              *string  `json:"date,omitempty"`
	Status            *string  `json:"status,omitempty" binding:"omitempty,oneof=pending completed"`
	IsRecurring       *bool    `json:"is_recurring,omitempty"`
	RecurringInterval *string  `json:"recurring_interval,omitempty" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                string            `json:"id"`
	Type              string            `json:"type"`
	AccountID         string            `json:"account_id"`
	CategoryID        *string           `json:"category_id,omitempty"`
	Category          *CategoryResponse `json:"category,omitempty"`
	Amount            string            `json:"amount"`
	Description       string            `json:"description"`
	Date              string            `json:"date"`
	Status            string            `json:"status"`
	IsRecurring       bool              `json:"is_recurring"`
	RecurringInterval *string           `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// TransactionListResponse represents the data payload for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
	IncomeTotal  string                `json:"income_total"`
	ExpenseTotal string                `json:"expense_total"`
	NetTotal     string                `json:"net_total"`
}

// ToTransactionResponse converts a domain Transaction entity to a response DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		Type:        string(txn.Type),
		AccountID:   txn.AccountID.String(),
		Amount:      txn.Amount.String(),
		Description: txn.Description,
		Date:        txn.Date.Format("2006-01-02"),
		Status:      string(txn.Status),
		IsRecurring: txn.IsRecurring,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		response.CategoryID = &id
	}
	if txn.RecurringInterval != nil {
		interval := string(*txn.RecurringInterval)
		response.RecurringInterval = &interval
	}
	return response
}

// ToTransactionWithCategoryResponse converts a transaction with its resolved
// category to a response DTO.
func ToTransactionWithCategoryResponse(twc *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(twc.Transaction)
	if twc.Category != nil {
		category := ToCategoryResponse(twc.Category)
		response.Category = &category
	}
	return response
}

// ToTransactionListResponse converts a paginated list result and its
// aggregated totals to a response DTO.
func ToTransactionListResponse(result *entity.TransactionListResult, totals *adapter.TransactionTotals) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		transactions = append(transactions, ToTransactionWithCategoryResponse(txn))
	}
	return TransactionListResponse{
		Transactions: transactions,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
		IncomeTotal:  totals.IncomeTotal.String(),
		ExpenseTotal: totals.ExpenseTotal.String(),
		NetTotal:     totals.NetTotal.String(),
	}
}
