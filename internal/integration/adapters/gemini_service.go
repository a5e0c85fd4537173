// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// GeminiService implements the ReceiptExtractor using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance. An empty model
// name falls back to the default.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Extract parses receipt content into a transaction draft.
func (s *GeminiService) Extract(ctx context.Context, request *adapter.ReceiptExtractionRequest) (*adapter.TransactionDraft, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(request)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	draft, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return draft, nil
}

// buildPrompt creates the extraction prompt for Gemini.
func (s *GeminiService) buildPrompt(request *adapter.ReceiptExtractionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert at reading purchase receipts and bank statement lines. Your task is to extract a single transaction from the receipt text below.

For the receipt you must determine:
1. The transaction type: "expense" for purchases and payments, "income" for refunds, deposits and salary credits
2. The total amount as a positive decimal number (use the final total, after discounts and including tax)
3. A short human-readable description (merchant name or purpose, max 100 characters)
4. The transaction date in ISO format (2006-01-02), or an empty string when the receipt carries no date
5. The best matching category from the user's categories listed below, or an empty string when none fits

RULES:
- Pick a category ONLY from the list below, matched by name exactly as written
- The category type must agree with the transaction type (expense categories for expenses)
- Never invent categories that are not in the list
- When several totals appear, prefer the one labelled total, amount due or paid

USER CATEGORIES:
`)

	if len(request.Categories) > 0 {
		for _, cat := range request.Categories {
			sb.WriteString(fmt.Sprintf("- Name: %s, Type: %s\n", cat.Name, cat.Type))
		}
	} else {
		sb.WriteString("(no categories)\n")
	}

	sb.WriteString("\nRECEIPT TEXT:\n")
	sb.WriteString(request.Content)

	sb.WriteString(`

Respond with a single JSON object:
{
  "type": "expense" | "income",
  "amount": "positive decimal string",
  "description": "string",
  "date": "2006-01-02 or empty string",
  "category": "name from the list above or empty string"
}

RESPONSE FORMAT: Return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiDraft represents the raw response from Gemini.
type geminiDraft struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

// parseResponse parses the Gemini response into a TransactionDraft.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (*adapter.TransactionDraft, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiDraft
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", raw.Amount, err)
	}
	if amount.IsNegative() {
		amount = amount.Neg()
	}

	txType := entity.TransactionType(raw.Type)
	switch txType {
	case entity.TransactionTypeIncome, entity.TransactionTypeExpense:
		// Valid
	default:
		txType = entity.TransactionTypeExpense
	}

	return &adapter.TransactionDraft{
		Type:        txType,
		Amount:      amount,
		Description: strings.TrimSpace(raw.Description),
		Date:        strings.TrimSpace(raw.Date),
		Category:    strings.TrimSpace(raw.Category),
	}, nil
}
