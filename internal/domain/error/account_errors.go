// Package error defines domain-specific errors for the FinanceMate application.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccountType is returned when the account type is invalid.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrAccountNameRequired is returned when the account name is missing.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrNotAuthorizedToModifyAccount is returned when user is not authorized to modify an account.
	ErrNotAuthorizedToModifyAccount = errors.New("not authorized to modify account")

	// ErrAccountHasTransactions is returned when deleting an account that transactions still reference.
	ErrAccountHasTransactions = errors.New("account is referenced by transactions")

	// ErrDirectBalanceWrite is returned when a caller attempts to set an account balance directly.
	ErrDirectBalanceWrite = errors.New("account balance can only be changed through reconciliation")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountType  AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameRequired AccountErrorCode = "ACC-010002"
	ErrCodeDirectBalanceWrite  AccountErrorCode = "ACC-010003"
	ErrCodeMissingAccountFields AccountErrorCode = "ACC-010004"

	// Lookup/authorization errors (02XXXX)
	ErrCodeAccountNotFound      AccountErrorCode = "ACC-020001"
	ErrCodeNotAuthorizedAccount AccountErrorCode = "ACC-020002"

	// Conflict errors (03XXXX)
	ErrCodeAccountHasTransactions AccountErrorCode = "ACC-030001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
