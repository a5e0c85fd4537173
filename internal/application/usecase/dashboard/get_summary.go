// Package dashboard contains dashboard aggregation use cases.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

const (
	// TopCategoryLimit is how many spending categories the summary reports.
	TopCategoryLimit = 5
)

// GetSummaryInput represents the input for the dashboard summary. When
// the period is zero-valued the current calendar month is used.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// BudgetSummary is one budget's standing within the summary.
type BudgetSummary struct {
	BudgetID       uuid.UUID
	CategoryID     uuid.UUID
	Limit          decimal.Decimal
	RemainingLimit decimal.Decimal
	Status         valueobject.BudgetStatus
	SpentPercent   int64
}

// GetSummaryOutput represents the dashboard summary payload.
type GetSummaryOutput struct {
	TotalBalance  decimal.Decimal
	IncomeTotal   decimal.Decimal
	ExpenseTotal  decimal.Decimal
	NetTotal      decimal.Decimal
	TopCategories []*adapter.CategorySpending
	Budgets       []*BudgetSummary
	GoalCount     int
}

// GetSummaryUseCase aggregates the user's financial standing for the
// dashboard view.
type GetSummaryUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	goalRepo        adapter.GoalRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		goalRepo:        goalRepo,
	}
}

// Execute builds the dashboard summary. The top-category breakdown is a
// non-essential decoration: when it fails the summary degrades to an
// empty list instead of failing the whole request.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	start, end := input.StartDate, input.EndDate
	if start.IsZero() || end.IsZero() {
		start, end = currentMonth(time.Now().UTC())
	}

	accounts, err := uc.accountRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	totalBalance := decimal.Zero
	for _, a := range accounts {
		totalBalance = totalBalance.Add(a.Balance)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute period totals: %w", err)
	}

	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	budgetSummaries := make([]*BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		budgetSummaries = append(budgetSummaries, &BudgetSummary{
			BudgetID:       b.ID,
			CategoryID:     b.CategoryID,
			Limit:          b.Limit,
			RemainingLimit: b.RemainingLimit,
			Status:         valueobject.ClassifyBudget(b.Limit, b.RemainingLimit),
			SpentPercent:   valueobject.SpentPercentage(b.Limit, b.RemainingLimit),
		})
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	topCategories, err := uc.transactionRepo.GetSpendingByCategory(ctx, input.UserID, TopCategoryLimit)
	if err != nil {
		slog.Warn("Failed to load top spending categories for summary", "userId", input.UserID, "error", err)
		topCategories = []*adapter.CategorySpending{}
	}

	return &GetSummaryOutput{
		TotalBalance:  totalBalance,
		IncomeTotal:   totals.IncomeTotal,
		ExpenseTotal:  totals.ExpenseTotal,
		NetTotal:      totals.NetTotal,
		TopCategories: topCategories,
		Budgets:       budgetSummaries,
		GoalCount:     len(goals),
	}, nil
}

// currentMonth returns the inclusive start and exclusive end of the
// calendar month containing t.
func currentMonth(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
