// Package error defines domain-specific errors for the FinanceMate application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrNotAuthorizedToModifyGoal is returned when user is not authorized to modify a goal.
	ErrNotAuthorizedToModifyGoal = errors.New("not authorized to modify goal")

	// ErrGoalNameRequired is returned when the goal name is empty.
	ErrGoalNameRequired = errors.New("goal name is required")

	// ErrInvalidGoalAmount is returned when the goal total amount is not positive.
	ErrInvalidGoalAmount = errors.New("goal total amount must be greater than zero")

	// ErrInvalidContributionAmount is returned when the contribution amount is not positive.
	ErrInvalidContributionAmount = errors.New("contribution amount must be greater than zero")

	// ErrInvalidContributionInterval is returned when the contribution interval is invalid.
	ErrInvalidContributionInterval = errors.New("invalid contribution interval")

	// ErrGoalAlreadyCompleted is returned when contributing to a completed goal.
	ErrGoalAlreadyCompleted = errors.New("goal is already completed")

	// ErrInsufficientAccountBalance is returned when a contribution exceeds the funding account balance.
	ErrInsufficientAccountBalance = errors.New("insufficient account balance for contribution")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidGoalAmount            GoalErrorCode = "GOL-010001"
	ErrCodeInvalidContributionAmount    GoalErrorCode = "GOL-010002"
	ErrCodeInvalidContributionInterval  GoalErrorCode = "GOL-010003"
	ErrCodeMissingGoalFields            GoalErrorCode = "GOL-010004"

	// Lookup/authorization errors (02XXXX)
	ErrCodeGoalNotFound      GoalErrorCode = "GOL-020001"
	ErrCodeNotAuthorizedGoal GoalErrorCode = "GOL-020002"

	// Conflict errors (03XXXX)
	ErrCodeGoalAlreadyCompleted       GoalErrorCode = "GOL-030001"
	ErrCodeInsufficientAccountBalance GoalErrorCode = "GOL-030002"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
