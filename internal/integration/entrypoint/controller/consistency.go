// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yasasArt/financemate-backend/internal/application/usecase/account"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/budget"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/dto"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
)

// ConsistencyController handles aggregate consistency endpoints. Verify
// reads compare a stored aggregate with its recomputation from the
// transaction log; rebuild writes repair the stored value after drift.
type ConsistencyController struct {
	verifyAccountUseCase  *account.VerifyAccountUseCase
	rebuildAccountUseCase *account.RebuildAccountUseCase
	verifyBudgetUseCase   *budget.VerifyBudgetUseCase
	rebuildBudgetUseCase  *budget.RebuildBudgetUseCase
}

// NewConsistencyController creates a new consistency controller instance.
func NewConsistencyController(
	verifyAccountUseCase *account.VerifyAccountUseCase,
	rebuildAccountUseCase *account.RebuildAccountUseCase,
	verifyBudgetUseCase *budget.VerifyBudgetUseCase,
	rebuildBudgetUseCase *budget.RebuildBudgetUseCase,
) *ConsistencyController {
	return &ConsistencyController{
		verifyAccountUseCase:  verifyAccountUseCase,
		rebuildAccountUseCase: rebuildAccountUseCase,
		verifyBudgetUseCase:   verifyBudgetUseCase,
		rebuildBudgetUseCase:  rebuildBudgetUseCase,
	}
}

// VerifyAccount handles GET /accounts/:id/consistency requests.
func (c *ConsistencyController) VerifyAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "Invalid account ID format")
	if !ok {
		return
	}

	output, err := c.verifyAccountUseCase.Execute(ctx.Request.Context(), account.VerifyAccountInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		c.handleConsistencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("consistency", dto.ToAccountConsistencyResponse(output.Report)))
}

// RebuildAccount handles POST /accounts/:id/consistency requests.
func (c *ConsistencyController) RebuildAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "Invalid account ID format")
	if !ok {
		return
	}

	output, err := c.rebuildAccountUseCase.Execute(ctx.Request.Context(), account.VerifyAccountInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		c.handleConsistencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("consistency", dto.ToAccountConsistencyResponse(output.Report)))
}

// VerifyBudget handles GET /budgets/:id/consistency requests.
func (c *ConsistencyController) VerifyBudget(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, ok := parseIDParam(ctx, "Invalid budget ID format")
	if !ok {
		return
	}

	output, err := c.verifyBudgetUseCase.Execute(ctx.Request.Context(), budget.VerifyBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		c.handleConsistencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("consistency", dto.ToBudgetConsistencyResponse(output.Report)))
}

// RebuildBudget handles POST /budgets/:id/consistency requests.
func (c *ConsistencyController) RebuildBudget(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	budgetID, ok := parseIDParam(ctx, "Invalid budget ID format")
	if !ok {
		return
	}

	output, err := c.rebuildBudgetUseCase.Execute(ctx.Request.Context(), budget.VerifyBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		c.handleConsistencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("consistency", dto.ToBudgetConsistencyResponse(output.Report)))
}

// handleConsistencyError handles ownership failures from either aggregate.
func (c *ConsistencyController) handleConsistencyError(ctx *gin.Context, err error) {
	var accErr *domainerror.AccountError
	if errors.As(err, &accErr) {
		statusCode := http.StatusInternalServerError
		switch accErr.Code {
		case domainerror.ErrCodeAccountNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedAccount:
			statusCode = http.StatusForbidden
		}
		ctx.JSON(statusCode, dto.Fail(accErr.Message, string(accErr.Code)))
		return
	}

	var bgtErr *domainerror.BudgetError
	if errors.As(err, &bgtErr) {
		statusCode := http.StatusInternalServerError
		switch bgtErr.Code {
		case domainerror.ErrCodeBudgetNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedBudget:
			statusCode = http.StatusForbidden
		}
		ctx.JSON(statusCode, dto.Fail(bgtErr.Message, string(bgtErr.Code)))
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.Fail("An internal error occurred", ""))
}
