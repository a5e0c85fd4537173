// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// ReceiptCategory describes an existing category offered to the extractor
// so it can match drafts against the user's own categories.
type ReceiptCategory struct {
	ID   uuid.UUID
	Name string
	Type entity.CategoryType
}

// ReceiptExtractionRequest carries the raw receipt content and the user's
// categories for matching.
type ReceiptExtractionRequest struct {
	Content    string // Free text captured from a receipt (typed, transcribed or OCR'd)
	Categories []ReceiptCategory
}

// TransactionDraft is the extractor's proposal for a transaction. It is
// never persisted; the client reviews and submits it through the normal
// transaction creation flow.
type TransactionDraft struct {
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        string // ISO date (2006-01-02); empty when not present on the receipt
	Category    string // Matched category name; empty when no match
	CategoryID  *uuid.UUID
}

// ReceiptExtractor defines the interface for the AI service that turns
// receipt text into a transaction draft.
type ReceiptExtractor interface {
	// IsAvailable reports whether the extractor is configured.
	IsAvailable() bool

	// Extract parses receipt content into a transaction draft.
	Extract(ctx context.Context, request *ReceiptExtractionRequest) (*TransactionDraft, error)
}
