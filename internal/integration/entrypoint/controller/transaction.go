// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/transaction"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/dto"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
)

const (
	transactionDateLayout = "2006-01-02"

	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests. Filters, pagination and a
// description search all come in as query parameters.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	filter, ok := c.parseFilter(ctx, userID)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		Filter:     filter,
		Pagination: adapter.TransactionPagination{Page: page, Limit: limit},
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("transactions", dto.ToTransactionListResponse(output.Result, output.Totals)))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, ok := parseIDParam(ctx, "Invalid transaction ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("transaction", dto.ToTransactionWithCategoryResponse(output.Transaction)))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingTransactionFields),
		))
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid account ID format", ""))
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid category ID format", ""))
			return
		}
		categoryID = &id
	}

	date, err := time.Parse(transactionDateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid date format, expected YYYY-MM-DD",
			string(domainerror.ErrCodeMissingTransactionFields),
		))
		return
	}

	var recurringInterval *entity.RecurringInterval
	if req.RecurringInterval != nil {
		interval := entity.RecurringInterval(*req.RecurringInterval)
		recurringInterval = &interval
	}

	input := transaction.CreateTransactionInput{
		ID:                idempotencyKey(ctx),
		UserID:            userID,
		Type:              entity.TransactionType(req.Type),
		AccountID:         accountID,
		CategoryID:        categoryID,
		Amount:            decimal.NewFromFloat(req.Amount),
		Description:       req.Description,
		Date:              date,
		Status:            entity.TransactionStatus(req.Status),
		IsRecurring:       req.IsRecurring,
		RecurringInterval: recurringInterval,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("transaction", dto.ToTransactionResponse(output.Transaction)))
}

// idempotencyKey reads the optional Idempotency-Key header. The value
// must be a UUID; anything else is ignored and the server assigns the
// transaction ID.
func idempotencyKey(ctx *gin.Context) uuid.UUID {
	key := ctx.GetHeader("Idempotency-Key")
	if key == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, ok := parseIDParam(ctx, "Invalid transaction ID format")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingTransactionFields),
		))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		ClearCategory: req.ClearCategory,
		Description:   req.Description,
		IsRecurring:   req.IsRecurring,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.AccountID != nil {
		id, err := uuid.Parse(*req.AccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid account ID format", ""))
			return
		}
		input.AccountID = &id
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid category ID format", ""))
			return
		}
		input.CategoryID = &id
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := time.Parse(transactionDateLayout, *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail(
				"Invalid date format, expected YYYY-MM-DD",
				string(domainerror.ErrCodeMissingTransactionFields),
			))
			return
		}
		input.Date = &date
	}
	if req.Status != nil {
		status := entity.TransactionStatus(*req.Status)
		input.Status = &status
	}
	if req.RecurringInterval != nil {
		interval := entity.RecurringInterval(*req.RecurringInterval)
		input.RecurringInterval = &interval
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("transaction", dto.ToTransactionResponse(output.Transaction)))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	transactionID, ok := parseIDParam(ctx, "Invalid transaction ID format")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseFilter builds the repository filter from query parameters. It
// writes the error response and returns false when a parameter is
// malformed.
func (c *TransactionController) parseFilter(ctx *gin.Context, userID uuid.UUID) (adapter.TransactionFilter, bool) {
	filter := adapter.TransactionFilter{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if raw := ctx.Query("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid account ID format", ""))
			return filter, false
		}
		filter.AccountID = &id
	}
	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid category ID format", ""))
			return filter, false
		}
		filter.CategoryID = &id
	}
	if raw := ctx.Query("type"); raw != "" {
		txnType := entity.TransactionType(raw)
		if txnType != entity.TransactionTypeIncome && txnType != entity.TransactionTypeExpense {
			ctx.JSON(http.StatusBadRequest, dto.Fail(
				"Invalid transaction type filter",
				string(domainerror.ErrCodeInvalidTransactionType),
			))
			return filter, false
		}
		filter.Type = &txnType
	}
	if raw := ctx.Query("status"); raw != "" {
		status := entity.TransactionStatus(raw)
		if status != entity.TransactionStatusPending && status != entity.TransactionStatusCompleted {
			ctx.JSON(http.StatusBadRequest, dto.Fail(
				"Invalid transaction status filter",
				string(domainerror.ErrCodeInvalidTransactionStatus),
			))
			return filter, false
		}
		filter.Status = &status
	}
	if raw := ctx.Query("start_date"); raw != "" {
		date, err := time.Parse(transactionDateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid start_date format, expected YYYY-MM-DD", ""))
			return filter, false
		}
		filter.StartDate = &date
	}
	if raw := ctx.Query("end_date"); raw != "" {
		date, err := time.Parse(transactionDateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid end_date format, expected YYYY-MM-DD", ""))
			return filter, false
		}
		filter.EndDate = &date
	}

	return filter, true
}

// handleTransactionError handles transaction errors and returns appropriate
// HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := c.getStatusCodeForTransactionError(txnErr.Code)
		ctx.JSON(statusCode, dto.Fail(txnErr.Message, string(txnErr.Code)))
		return
	}

	var partialErr *domainerror.PartialFailureError
	if errors.As(err, &partialErr) {
		ctx.JSON(http.StatusInternalServerError, dto.Fail(
			"The operation was partially applied and could not be rolled back",
			string(domainerror.ErrCodePartialFailure),
		))
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.Fail("An internal error occurred", ""))
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP
// status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionStatus,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeCategoryRequiredForExpense,
		domainerror.ErrCodeCategoryTypeMismatch,
		domainerror.ErrCodeInvalidRecurringInterval,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
