// Package receipt contains receipt extraction use cases.
package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
)

const (
	// MaxReceiptContentLength bounds the receipt text sent to the extractor.
	MaxReceiptContentLength = 8000
)

// ExtractReceiptInput represents the input for receipt extraction.
type ExtractReceiptInput struct {
	UserID  uuid.UUID
	Content string
}

// ExtractReceiptOutput represents the output of receipt extraction.
type ExtractReceiptOutput struct {
	Draft *adapter.TransactionDraft
}

// ExtractReceiptUseCase turns free-form receipt text into a transaction
// draft the client can review before submitting.
type ExtractReceiptUseCase struct {
	extractor    adapter.ReceiptExtractor
	categoryRepo adapter.CategoryRepository
}

// NewExtractReceiptUseCase creates a new ExtractReceiptUseCase instance.
func NewExtractReceiptUseCase(extractor adapter.ReceiptExtractor, categoryRepo adapter.CategoryRepository) *ExtractReceiptUseCase {
	return &ExtractReceiptUseCase{
		extractor:    extractor,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the receipt extraction. The draft is never persisted;
// creation goes through the normal transaction flow.
func (uc *ExtractReceiptUseCase) Execute(ctx context.Context, input ExtractReceiptInput) (*ExtractReceiptOutput, error) {
	if !uc.extractor.IsAvailable() {
		return nil, &ExtractionError{
			Code:      ErrCodeExtractorUnavailable,
			Message:   errorMessages[ErrCodeExtractorUnavailable],
			Retryable: false,
			Timestamp: time.Now(),
		}
	}
	if input.Content == "" {
		return nil, &ExtractionError{
			Code:      ErrCodeExtractorParseError,
			Message:   "receipt content is empty",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	content := input.Content
	if len(content) > MaxReceiptContentLength {
		content = content[:MaxReceiptContentLength]
	}

	categories, err := uc.categoryRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	receiptCategories := make([]adapter.ReceiptCategory, 0, len(categories))
	for _, c := range categories {
		receiptCategories = append(receiptCategories, adapter.ReceiptCategory{
			ID:   c.ID,
			Name: c.Name,
			Type: c.Type,
		})
	}

	draft, err := uc.extractor.Extract(ctx, &adapter.ReceiptExtractionRequest{
		Content:    content,
		Categories: receiptCategories,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	// Resolve the matched category name back to the user's category.
	if draft.Category != "" && draft.CategoryID == nil {
		for _, c := range categories {
			if c.Name == draft.Category && string(c.Type) == string(draft.Type) {
				id := c.ID
				draft.CategoryID = &id
				break
			}
		}
	}

	return &ExtractReceiptOutput{
		Draft: draft,
	}, nil
}
