// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/goal"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/dto"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
)

const goalDateLayout = "2006-01-02"

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase     *goal.CreateGoalUseCase
	listUseCase       *goal.ListGoalsUseCase
	getUseCase        *goal.GetGoalUseCase
	updateUseCase     *goal.UpdateGoalUseCase
	deleteUseCase     *goal.DeleteGoalUseCase
	contributeUseCase *goal.ContributeGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	contributeUseCase *goal.ContributeGoalUseCase,
) *GoalController {
	return &GoalController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		contributeUseCase: contributeUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("goals", dto.ToGoalListResponse(output.Goals)))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, ok := parseIDParam(ctx, "Invalid goal ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("goal", dto.ToGoalWithProgressResponse(output.Goal)))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingGoalFields),
		))
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid account ID format", ""))
		return
	}

	nextContribution, err := time.Parse(goalDateLayout, req.NextContributionDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid next_contribution_date format, expected YYYY-MM-DD",
			string(domainerror.ErrCodeMissingGoalFields),
		))
		return
	}

	input := goal.CreateGoalInput{
		UserID:               userID,
		Name:                 req.Name,
		Description:          req.Description,
		TotalAmount:          decimal.NewFromFloat(req.TotalAmount),
		AccountID:            accountID,
		ContributionAmount:   decimal.NewFromFloat(req.ContributionAmount),
		ContributionInterval: entity.ContributionInterval(req.ContributionInterval),
		NextContributionDate: nextContribution,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("goal", dto.ToGoalResponse(output.Goal)))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, ok := parseIDParam(ctx, "Invalid goal ID format")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingGoalFields),
		))
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:      goalID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}

	if req.TotalAmount != nil {
		amount := decimal.NewFromFloat(*req.TotalAmount)
		input.TotalAmount = &amount
	}
	if req.ContributionAmount != nil {
		amount := decimal.NewFromFloat(*req.ContributionAmount)
		input.ContributionAmount = &amount
	}
	if req.ContributionInterval != nil {
		interval := entity.ContributionInterval(*req.ContributionInterval)
		input.ContributionInterval = &interval
	}
	if req.NextContributionDate != nil {
		date, err := time.Parse(goalDateLayout, *req.NextContributionDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail(
				"Invalid next_contribution_date format, expected YYYY-MM-DD",
				string(domainerror.ErrCodeMissingGoalFields),
			))
			return
		}
		input.NextContributionDate = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("goal", dto.ToGoalResponse(output.Goal)))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, ok := parseIDParam(ctx, "Invalid goal ID format")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Contribute handles POST /goals/:id/contributions requests. A zero or
// absent amount uses the goal's configured contribution amount.
func (c *GoalController) Contribute(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, ok := parseIDParam(ctx, "Invalid goal ID format")
	if !ok {
		return
	}

	var req dto.ContributeGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.Fail(
			"Invalid request body",
			string(domainerror.ErrCodeMissingGoalFields),
		))
		return
	}

	output, err := c.contributeUseCase.Execute(ctx.Request.Context(), goal.ContributeGoalInput{
		GoalID: goalID,
		UserID: userID,
		Amount: decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	response := dto.ContributionResponse{
		Goal:        dto.ToGoalResponse(output.Goal),
		Transaction: dto.ToTransactionResponse(output.Transaction),
	}
	ctx.JSON(http.StatusCreated, dto.Success("contribution", response))
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := c.getStatusCodeForGoalError(goalErr.Code)
		ctx.JSON(statusCode, dto.Fail(goalErr.Message, string(goalErr.Code)))
		return
	}

	var acctErr *domainerror.AccountError
	if errors.As(err, &acctErr) {
		// Goal creation validates the funding account and can surface its
		// errors.
		statusCode := http.StatusBadRequest
		if acctErr.Code == domainerror.ErrCodeAccountNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.Fail(acctErr.Message, string(acctErr.Code)))
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

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedGoal:
		return http.StatusForbidden
	case domainerror.ErrCodeGoalAlreadyCompleted,
		domainerror.ErrCodeInsufficientAccountBalance:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidGoalAmount,
		domainerror.ErrCodeInvalidContributionAmount,
		domainerror.ErrCodeInvalidContributionInterval,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
