// Package error defines domain-specific errors for the FinanceMate application.
package error

import (
	"errors"
	"fmt"
	"strings"
)

// Reconciliation domain errors.
var (
	// ErrAlreadyApplied is returned when a transaction's effect has already
	// been applied to its aggregates. Callers treat this as a successful
	// no-op when idempotent behavior is desired.
	ErrAlreadyApplied = errors.New("transaction already applied")

	// ErrNotApplied is returned when reversing a transaction whose effect
	// was never applied.
	ErrNotApplied = errors.New("transaction effect was never applied")

	// ErrAggregateDrift is returned when a stored aggregate does not match
	// the value recomputed from the ledger.
	ErrAggregateDrift = errors.New("stored aggregate does not match ledger")
)

// ReconciliationErrorCode defines error codes for reconciliation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	ErrCodeAlreadyApplied ReconciliationErrorCode = "REC-010001"
	ErrCodeNotApplied     ReconciliationErrorCode = "REC-010002"
	ErrCodeAggregateDrift ReconciliationErrorCode = "REC-010003"
	ErrCodePartialFailure ReconciliationErrorCode = "REC-020001"
)

// ReconciliationStep names one write performed by the reconciliation engine.
type ReconciliationStep string

const (
	StepAccountBalance  ReconciliationStep = "account_balance"
	StepBudgetRemaining ReconciliationStep = "budget_remaining"
	StepCategoryOnTrack ReconciliationStep = "category_on_track"
	StepLedgerAppend    ReconciliationStep = "ledger_append"
)

// PartialFailureError is returned when part of a reconciliation operation
// was applied and the compensation of the already-applied steps also
// failed, leaving the aggregates in an inconsistent state. It is the
// highest-severity reconciliation failure: the caller must retry the
// compensation or repair via aggregate rebuild.
type PartialFailureError struct {
	Op          string               // Operation being performed (apply, reverse)
	Applied     []ReconciliationStep // Steps whose writes succeeded
	Compensated []ReconciliationStep // Steps successfully rolled back
	Cause       error                // Error that interrupted the operation
	CompErr     error                // Error that interrupted the compensation
}

// Error implements the error interface.
func (e *PartialFailureError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "partial reconciliation failure during %s: %v", e.Op, e.Cause)
	if e.CompErr != nil {
		fmt.Fprintf(&sb, " (compensation failed: %v)", e.CompErr)
	}
	if len(e.Applied) > 0 {
		applied := make([]string, len(e.Applied))
		for i, s := range e.Applied {
			applied[i] = string(s)
		}
		fmt.Fprintf(&sb, "; applied steps: %s", strings.Join(applied, ", "))
	}
	return sb.String()
}

// Unwrap returns the error that interrupted the operation.
func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// Uncompensated returns the steps that were applied but not rolled back.
func (e *PartialFailureError) Uncompensated() []ReconciliationStep {
	compensated := make(map[ReconciliationStep]bool, len(e.Compensated))
	for _, s := range e.Compensated {
		compensated[s] = true
	}

	var out []ReconciliationStep
	for _, s := range e.Applied {
		if !compensated[s] {
			out = append(out, s)
		}
	}
	return out
}

// NewPartialFailureError creates a new PartialFailureError.
func NewPartialFailureError(op string, applied, compensated []ReconciliationStep, cause, compErr error) *PartialFailureError {
	return &PartialFailureError{
		Op:          op,
		Applied:     applied,
		Compensated: compensated,
		Cause:       cause,
		CompErr:     compErr,
	}
}
