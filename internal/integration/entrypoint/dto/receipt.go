// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/yasasArt/financemate-backend/internal/application/adapter"
)

// ExtractReceiptRequest represents the request body for receipt extraction.
type ExtractReceiptRequest struct {
	Content string `json:"content" binding:"required"`
}

// TransactionDraftResponse represents the extracted transaction draft. The
// draft is never persisted; the client submits it through POST /transactions.
type TransactionDraftResponse struct {
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
	Category    string  `json:"category,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// ToTransactionDraftResponse converts an extractor draft to its DTO.
func ToTransactionDraftResponse(draft *adapter.TransactionDraft) TransactionDraftResponse {
	response := TransactionDraftResponse{
		Type:        string(draft.Type),
		Amount:      draft.Amount.String(),
		Description: draft.Description,
		Date:        draft.Date,
		Category:    draft.Category,
	}
	if draft.CategoryID != nil {
		id := draft.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}
