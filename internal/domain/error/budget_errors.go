// Package error defines domain-specific errors for the FinanceMate application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the category already has a budget.
	ErrBudgetAlreadyExists = errors.New("category already has a budget")

	// ErrBudgetLimitNotPositive is returned when the budget limit is zero or negative.
	ErrBudgetLimitNotPositive = errors.New("budget limit must be greater than zero")

	// ErrBudgetRequiresExpenseCategory is returned when attaching a budget to a non-expense category.
	ErrBudgetRequiresExpenseCategory = errors.New("budgets can only be attached to expense categories")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetLimitNotPositive        BudgetErrorCode = "BGT-010001"
	ErrCodeBudgetRequiresExpenseCategory BudgetErrorCode = "BGT-010002"
	ErrCodeMissingBudgetFields           BudgetErrorCode = "BGT-010003"

	// Lookup/authorization errors (02XXXX)
	ErrCodeBudgetNotFound      BudgetErrorCode = "BGT-020001"
	ErrCodeNotAuthorizedBudget BudgetErrorCode = "BGT-020002"

	// Conflict errors (03XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BGT-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
