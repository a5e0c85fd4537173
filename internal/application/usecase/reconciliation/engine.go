// Package reconciliation keeps account balances, budget remaining limits
// and category on-track flags consistent with the transaction ledger.
package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

const (
	// idempotencyTTL bounds how long an idempotency marker is kept. The
	// ledger's unique index remains the durable authority after expiry.
	idempotencyTTL = 24 * time.Hour
)

// Outcome describes the aggregate state after a reconciliation operation.
type Outcome struct {
	// AlreadyApplied is true when the operation was detected as a repeat
	// and no aggregate was touched.
	AlreadyApplied bool

	// NewBalance is the account balance after the operation.
	NewBalance decimal.Decimal

	// Budget is the updated budget, when the transaction's category has one.
	Budget *entity.Budget

	// BudgetStatus is the classification of Budget after the operation.
	BudgetStatus valueobject.BudgetStatus

	// PreviousStatus is the classification of Budget before the operation.
	PreviousStatus valueobject.BudgetStatus

	// CategoryOnTrack is the derived on-track flag written to the category.
	CategoryOnTrack bool
}

// StatusDeteriorated reports whether the operation pushed the budget into
// a worse band than it was in before.
func (o *Outcome) StatusDeteriorated() bool {
	if o.Budget == nil || o.BudgetStatus == o.PreviousStatus {
		return false
	}
	return o.BudgetStatus == valueobject.BudgetStatusOverLimit ||
		(o.BudgetStatus == valueobject.BudgetStatusNeedAttention && o.PreviousStatus == valueobject.BudgetStatusOnTrack)
}

// Notifier receives budget status deteriorations after a successful
// operation. Notification failures never fail the operation.
type Notifier interface {
	BudgetStatusChanged(ctx context.Context, userID uuid.UUID, outcome *Outcome)
}

// Engine is the single entry point for every mutation of account balances
// and budget remaining limits. All writes of one operation run inside one
// unit of work; within it the engine applies steps sequentially and
// compensates already-applied steps on failure, so it stays correct even
// on stores without multi-record transactions.
type Engine struct {
	uow         adapter.UnitOfWork
	idempotency adapter.IdempotencyStore
	notifier    Notifier
}

// NewEngine creates a new reconciliation engine. The notifier may be nil.
func NewEngine(uow adapter.UnitOfWork, idempotency adapter.IdempotencyStore, notifier Notifier) *Engine {
	return &Engine{
		uow:         uow,
		idempotency: idempotency,
		notifier:    notifier,
	}
}

// ApplyTransactionCreate persists a new transaction and, when it is
// completed, posts its effect to the owning account and any budget of its
// category. The transaction row and all aggregate writes share one unit of
// work: a failure while posting prevents the transaction from being
// persisted as completed.
func (e *Engine) ApplyTransactionCreate(ctx context.Context, tx *entity.Transaction) (*Outcome, error) {
	acquired, err := e.acquire(ctx, applyKey(tx.ID))
	if err == nil && !acquired {
		return &Outcome{AlreadyApplied: true}, nil
	}

	outcome := &Outcome{}
	uowErr := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		if !tx.IsCompleted() {
			return nil
		}
		return e.apply(ctx, repos, tx, outcome)
	})
	if uowErr != nil {
		e.release(ctx, applyKey(tx.ID))
		if errors.Is(uowErr, domainerror.ErrAlreadyApplied) {
			return &Outcome{AlreadyApplied: true}, nil
		}
		return nil, uowErr
	}

	e.notify(ctx, tx.UserID, outcome)
	return outcome, nil
}

// ApplyTransactionUpdate replaces oldTx with newTx: it first reverses the
// old transaction's effect, then applies the new one, all inside one unit
// of work. Status transitions are handled implicitly, since only completed
// transactions carry an effect.
func (e *Engine) ApplyTransactionUpdate(ctx context.Context, oldTx, newTx *entity.Transaction) (*Outcome, error) {
	outcome := &Outcome{}
	uowErr := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		if oldTx.IsCompleted() {
			if err := e.reverse(ctx, repos, oldTx, &Outcome{}); err != nil {
				return err
			}
		}
		if err := repos.Transactions.Update(ctx, newTx); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if !newTx.IsCompleted() {
			return nil
		}
		return e.apply(ctx, repos, newTx, outcome)
	})
	if uowErr != nil {
		return nil, uowErr
	}

	e.notify(ctx, newTx.UserID, outcome)
	return outcome, nil
}

// ApplyTransactionDelete removes a transaction, reversing its effect on
// the account and budget when it was completed.
func (e *Engine) ApplyTransactionDelete(ctx context.Context, tx *entity.Transaction) (*Outcome, error) {
	outcome := &Outcome{}
	uowErr := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		if tx.IsCompleted() {
			if err := e.reverse(ctx, repos, tx, outcome); err != nil {
				return err
			}
		}
		if err := repos.Transactions.Delete(ctx, tx.ID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
	if uowErr != nil {
		if errors.Is(uowErr, domainerror.ErrNotApplied) {
			return &Outcome{AlreadyApplied: true}, nil
		}
		return nil, uowErr
	}

	e.release(ctx, applyKey(tx.ID))
	return outcome, nil
}

// ApplyGoalContribution funds a goal from its linked account. The
// contribution is recorded as a completed expense transaction so the
// invariant that the balance equals the signed sum of completed
// transactions is preserved.
func (e *Engine) ApplyGoalContribution(ctx context.Context, goal *entity.Goal, amount decimal.Decimal) (*entity.Transaction, error) {
	tx := entity.NewTransaction(
		goal.UserID,
		entity.TransactionTypeExpense,
		goal.AccountID,
		nil,
		amount,
		fmt.Sprintf("Contribution to goal %q", goal.Name),
		time.Now().UTC(),
		entity.TransactionStatusCompleted,
		false,
		nil,
	)

	uowErr := e.uow.Execute(ctx, func(ctx context.Context, repos adapter.RepositorySet) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, goal.AccountID)
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		if account.Balance.LessThan(amount) {
			return domainerror.NewGoalError(
				domainerror.ErrCodeInsufficientAccountBalance,
				"account balance is lower than the contribution amount",
				domainerror.ErrInsufficientAccountBalance,
			)
		}

		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to record contribution transaction: %w", err)
		}
		if err := e.apply(ctx, repos, tx, &Outcome{}); err != nil {
			return err
		}

		goal.Contribute(amount)
		goal.AdvanceNextContribution(time.Now().UTC())
		if err := repos.Goals.Update(ctx, goal); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if uowErr != nil {
		return nil, uowErr
	}
	return tx, nil
}

// apply posts the transaction's effect. Steps run in a fixed order:
// ledger guard, account balance, budget remaining limit, category
// on-track flag. Already-applied steps are compensated when a later step
// fails; a compensation failure surfaces as a PartialFailureError.
func (e *Engine) apply(ctx context.Context, repos adapter.RepositorySet, tx *entity.Transaction, outcome *Outcome) error {
	return e.post(ctx, repos, tx, entity.LedgerEventApply, outcome)
}

// reverse posts the exact inverse of a previously applied transaction.
func (e *Engine) reverse(ctx context.Context, repos adapter.RepositorySet, tx *entity.Transaction, outcome *Outcome) error {
	return e.post(ctx, repos, tx, entity.LedgerEventReverse, outcome)
}

func (e *Engine) post(ctx context.Context, repos adapter.RepositorySet, tx *entity.Transaction, kind entity.LedgerEventKind, outcome *Outcome) error {
	op := string(kind)

	applies, err := repos.Ledger.CountByTransactionAndKind(ctx, tx.ID, entity.LedgerEventApply)
	if err != nil {
		return fmt.Errorf("failed to count ledger postings: %w", err)
	}
	reverses, err := repos.Ledger.CountByTransactionAndKind(ctx, tx.ID, entity.LedgerEventReverse)
	if err != nil {
		return fmt.Errorf("failed to count ledger postings: %w", err)
	}

	net := applies - reverses
	if kind == entity.LedgerEventApply && net > 0 {
		return domainerror.ErrAlreadyApplied
	}
	if kind == entity.LedgerEventReverse && net <= 0 {
		return domainerror.ErrNotApplied
	}

	amount := tx.SignedAmount()
	var reversedApply *entity.LedgerEvent
	if kind == entity.LedgerEventReverse {
		events, err := repos.Ledger.FindByTransaction(ctx, tx.ID)
		if err != nil {
			return fmt.Errorf("failed to load ledger postings: %w", err)
		}
		for _, event := range events {
			if event.Kind == entity.LedgerEventApply && event.Sequence == int(reverses) {
				reversedApply = event
				break
			}
		}
		if reversedApply == nil {
			return domainerror.ErrNotApplied
		}
		// Mirror what the apply actually posted, not the transaction's
		// current state. The category's budget may have been created,
		// replaced or deleted since the apply ran.
		amount = reversedApply.Amount.Neg()
	}

	var applied []appliedStep

	account, err := repos.Accounts.FindByIDForUpdate(ctx, tx.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	// Step 1: account balance.
	previousBalance := account.Balance
	newBalance := previousBalance.Add(amount)
	if err := repos.Accounts.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	applied = append(applied, appliedStep{
		name: domainerror.StepAccountBalance,
		undo: func() error {
			return repos.Accounts.UpdateBalance(ctx, account.ID, previousBalance)
		},
	})
	outcome.NewBalance = newBalance

	// Step 2 and 3: budget remaining limit and category on-track flag,
	// only when the posting carries a budget.
	var budgetID *uuid.UUID
	budget, err := e.lockBudgetFor(ctx, repos, tx, kind, reversedApply)
	if err != nil {
		return e.compensate(op, applied, err)
	}
	if budget != nil {
		previousRemaining := budget.RemainingLimit
		outcome.PreviousStatus = valueobject.ClassifyBudget(budget.Limit, previousRemaining)

		// The account amount is negative for an applied expense; the
		// budget posting shares its sign.
		budget.RemainingLimit = previousRemaining.Add(amount)
		if err := repos.Budgets.UpdateRemainingLimit(ctx, budget.ID, budget.RemainingLimit); err != nil {
			return e.compensate(op, applied, fmt.Errorf("failed to update budget remaining limit: %w", err))
		}
		applied = append(applied, appliedStep{
			name: domainerror.StepBudgetRemaining,
			undo: func() error {
				return repos.Budgets.UpdateRemainingLimit(ctx, budget.ID, previousRemaining)
			},
		})

		status := valueobject.ClassifyBudget(budget.Limit, budget.RemainingLimit)
		onTrack := valueobject.OnTrack(status)
		previousOnTrack := valueobject.OnTrack(outcome.PreviousStatus)
		if err := repos.Categories.SetOnTrack(ctx, budget.CategoryID, onTrack); err != nil {
			return e.compensate(op, applied, fmt.Errorf("failed to update category on-track flag: %w", err))
		}
		applied = append(applied, appliedStep{
			name: domainerror.StepCategoryOnTrack,
			undo: func() error {
				return repos.Categories.SetOnTrack(ctx, budget.CategoryID, previousOnTrack)
			},
		})

		budgetID = &budget.ID
		outcome.Budget = budget
		outcome.BudgetStatus = status
		outcome.CategoryOnTrack = onTrack
	}

	// Step 4: the ledger posting itself. Its unique index is the durable
	// idempotency guard.
	sequence := int(applies)
	if kind == entity.LedgerEventReverse {
		sequence = int(reverses)
	}
	event := entity.NewLedgerEvent(tx.ID, tx.AccountID, budgetID, amount, kind, sequence)
	if err := repos.Ledger.Append(ctx, event); err != nil {
		if errors.Is(err, domainerror.ErrAlreadyApplied) {
			return e.compensate(op, applied, domainerror.ErrAlreadyApplied)
		}
		return e.compensate(op, applied, fmt.Errorf("failed to append ledger posting: %w", err))
	}

	return nil
}

// lockBudgetFor resolves the budget a posting touches. An apply posts to
// the current budget of an expense's category; a reverse posts to the
// budget its mirrored apply event recorded, so a budget created after the
// apply is never credited for spending it was never debited for. A nil
// budget with a nil error means the posting skips the budget steps.
func (e *Engine) lockBudgetFor(ctx context.Context, repos adapter.RepositorySet, tx *entity.Transaction, kind entity.LedgerEventKind, reversedApply *entity.LedgerEvent) (*entity.Budget, error) {
	if kind == entity.LedgerEventReverse {
		if reversedApply.BudgetID == nil {
			return nil, nil
		}
		budget, err := repos.Budgets.FindByIDForUpdate(ctx, *reversedApply.BudgetID)
		if err != nil {
			// The budget was deleted after the apply; there is nothing
			// left to credit.
			if errors.Is(err, domainerror.ErrBudgetNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to load budget: %w", err)
		}
		return budget, nil
	}

	if tx.Type != entity.TransactionTypeExpense || tx.CategoryID == nil {
		return nil, nil
	}
	budget, err := repos.Budgets.FindByCategoryIDForUpdate(ctx, *tx.CategoryID)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	return budget, nil
}

// appliedStep pairs a completed write with the action that undoes it.
type appliedStep struct {
	name domainerror.ReconciliationStep
	undo func() error
}

// compensate rolls back already-applied steps in reverse order. When a
// rollback itself fails the error escalates to a PartialFailureError so
// the caller knows the aggregates are inconsistent.
func (e *Engine) compensate(op string, applied []appliedStep, cause error) error {
	appliedNames := make([]domainerror.ReconciliationStep, len(applied))
	for i, s := range applied {
		appliedNames[i] = s.name
	}

	var compensated []domainerror.ReconciliationStep
	for i := len(applied) - 1; i >= 0; i-- {
		if err := applied[i].undo(); err != nil {
			return domainerror.NewPartialFailureError(op, appliedNames, compensated, cause, err)
		}
		compensated = append(compensated, applied[i].name)
	}
	return cause
}

func (e *Engine) acquire(ctx context.Context, key string) (bool, error) {
	if e.idempotency == nil {
		return true, nil
	}
	acquired, err := e.idempotency.Acquire(ctx, key, idempotencyTTL)
	if err != nil {
		// The idempotency store is a fast path; the ledger unique index
		// still guards correctness when it is unavailable.
		slog.Warn("Idempotency store unavailable, relying on ledger guard", "error", err)
		return true, nil
	}
	return acquired, nil
}

func (e *Engine) release(ctx context.Context, key string) {
	if e.idempotency == nil {
		return
	}
	if err := e.idempotency.Release(ctx, key); err != nil {
		slog.Warn("Failed to release idempotency key", "key", key, "error", err)
	}
}

func (e *Engine) notify(ctx context.Context, userID uuid.UUID, outcome *Outcome) {
	if e.notifier == nil || !outcome.StatusDeteriorated() {
		return
	}
	e.notifier.BudgetStatusChanged(ctx, userID, outcome)
}

func applyKey(transactionID uuid.UUID) string {
	return "reconciliation:apply:" + transactionID.String()
}
