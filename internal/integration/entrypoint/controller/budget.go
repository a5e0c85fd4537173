// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/budget"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/dto"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	createUseCase        *budget.CreateBudgetUseCase
	listUseCase          *budget.ListBudgetsUseCase
	getByCategoryUseCase *budget.GetBudgetByCategoryUseCase
	updateUseCase        *budget.UpdateBudgetUseCase
	deleteUseCase        *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	getByCategoryUseCase *budget.GetBudgetByCategoryUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:        createUseCase,
		listUseCase:          listUseCase,
		getByCategoryUseCase: getByCategoryUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("budgets", dto.ToBudgetListResponse(output.Budgets)))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingBudgetFields),
		))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid category ID format", ""))
		return
	}

	input := budget.CreateBudgetInput{
		UserID:     userID,
		CategoryID: categoryID,
		Limit:      decimal.NewFromFloat(req.Limit),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	created := &budget.BudgetWithStatus{
		Budget: output.Budget,
		Status: valueobject.ClassifyBudget(output.Budget.Limit, output.Budget.RemainingLimit),
	}
	ctx.JSON(http.StatusCreated, dto.Success("budget", dto.ToBudgetResponse(created)))
}

// GetByCategory handles GET /budgets/category/:categoryId requests.
func (c *BudgetController) GetByCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("categoryId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid category ID format", ""))
		return
	}

	output, err := c.getByCategoryUseCase.Execute(ctx.Request.Context(), budget.GetBudgetByCategoryInput{
		UserID:     userID,
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("budget", dto.ToBudgetResponse(output.Budget)))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, ok := parseIDParam(ctx, "Invalid budget ID format")
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingBudgetFields),
		))
		return
	}

	input := budget.UpdateBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
		Limit:    decimal.NewFromFloat(req.Limit),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("budget", dto.ToBudgetResponse(output.Budget)))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, ok := parseIDParam(ctx, "Invalid budget ID format")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var bgtErr *domainerror.BudgetError
	if errors.As(err, &bgtErr) {
		statusCode := c.getStatusCodeForBudgetError(bgtErr.Code)
		ctx.JSON(statusCode, dto.Fail(bgtErr.Message, string(bgtErr.Code)))
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		// Budget creation validates the category and can surface its errors.
		statusCode := http.StatusBadRequest
		if catErr.Code == domainerror.ErrCodeCategoryNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.Fail(catErr.Message, string(catErr.Code)))
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.Fail("An internal error occurred", ""))
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedBudget:
		return http.StatusForbidden
	case domainerror.ErrCodeBudgetLimitNotPositive,
		domainerror.ErrCodeBudgetRequiresExpenseCategory,
		domainerror.ErrCodeMissingBudgetFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
