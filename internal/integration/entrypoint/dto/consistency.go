// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
)

// AccountConsistencyResponse compares an account's stored balance with the
// balance recomputed from its completed transactions.
type AccountConsistencyResponse struct {
	AccountID       string `json:"account_id"`
	StoredBalance   string `json:"stored_balance"`
	ComputedBalance string `json:"computed_balance"`
	Consistent      bool   `json:"consistent"`
}

// ToAccountConsistencyResponse converts an account consistency report to
// its response DTO.
func ToAccountConsistencyResponse(report *reconciliation.VerifyAccountOutput) AccountConsistencyResponse {
	return AccountConsistencyResponse{
		AccountID:       report.AccountID.String(),
		StoredBalance:   report.StoredBalance.String(),
		ComputedBalance: report.ComputedBalance.String(),
		Consistent:      report.Consistent,
	}
}

// BudgetConsistencyResponse compares a budget's stored remaining limit
// with the value recomputed from completed expenses in its category.
type BudgetConsistencyResponse struct {
	BudgetID          string `json:"budget_id"`
	StoredRemaining   string `json:"stored_remaining"`
	ComputedRemaining string `json:"computed_remaining"`
	Consistent        bool   `json:"consistent"`
}

// ToBudgetConsistencyResponse converts a budget consistency report to its
// response DTO.
func ToBudgetConsistencyResponse(report *reconciliation.VerifyBudgetOutput) BudgetConsistencyResponse {
	return BudgetConsistencyResponse{
		BudgetID:          report.BudgetID.String(),
		StoredRemaining:   report.StoredRemaining.String(),
		ComputedRemaining: report.ComputedRemaining.String(),
		Consistent:        report.Consistent,
	}
}
