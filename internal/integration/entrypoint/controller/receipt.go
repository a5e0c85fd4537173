// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/receipt"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/dto"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
)

// ReceiptController handles receipt extraction endpoints.
type ReceiptController struct {
	extractUseCase *receipt.ExtractReceiptUseCase
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(extractUseCase *receipt.ExtractReceiptUseCase) *ReceiptController {
	return &ReceiptController{
		extractUseCase: extractUseCase,
	}
}

// Extract handles POST /receipts/extract requests. The returned draft is
// a suggestion only; nothing is persisted until the client creates the
// transaction through the normal flow.
func (c *ReceiptController) Extract(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ExtractReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Receipt content is required", ""))
		return
	}

	output, err := c.extractUseCase.Execute(ctx.Request.Context(), receipt.ExtractReceiptInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		c.handleExtractionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("draft", dto.ToTransactionDraftResponse(output.Draft)))
}

// handleExtractionError maps extraction errors to HTTP responses.
func (c *ReceiptController) handleExtractionError(ctx *gin.Context, err error) {
	var extErr *receipt.ExtractionError
	if errors.As(err, &extErr) {
		ctx.JSON(c.getStatusCodeForExtractionError(extErr.Code), dto.Fail(extErr.Message, extErr.Code))
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.Fail("An internal error occurred", ""))
}

// getStatusCodeForExtractionError maps extraction error codes to HTTP
// status codes.
func (c *ReceiptController) getStatusCodeForExtractionError(code string) int {
	switch code {
	case receipt.ErrCodeExtractorRateLimited:
		return http.StatusTooManyRequests
	case receipt.ErrCodeExtractorUnavailable,
		receipt.ErrCodeExtractorAuthError:
		return http.StatusServiceUnavailable
	case receipt.ErrCodeExtractorTimeout:
		return http.StatusGatewayTimeout
	case receipt.ErrCodeExtractorParseError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
