package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

type engineFixture struct {
	store    *fakeStore
	engine   *Engine
	userID   uuid.UUID
	account  *entity.Account
	category *entity.Category
	budget   *entity.Budget
}

// newEngineFixture seeds a user with one account holding 1000, an expense
// category and a 650 budget with 163 remaining (487 already spent).
func newEngineFixture() *engineFixture {
	store := newFakeStore()
	userID := uuid.New()

	account := entity.NewAccount(userID, "Main", entity.AccountTypeChecking, decimal.NewFromInt(1000), true)
	store.accounts[account.ID] = account

	category := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense)
	store.categories[category.ID] = category

	budget := entity.NewBudget(userID, category.ID, decimal.NewFromInt(650))
	budget.RemainingLimit = decimal.NewFromInt(163)
	store.budgets[budget.ID] = budget

	return &engineFixture{
		store:    store,
		engine:   NewEngine(&fakeUnitOfWork{store: store}, nil, nil),
		userID:   userID,
		account:  account,
		category: category,
		budget:   budget,
	}
}

func (f *engineFixture) expense(amount int64, status entity.TransactionStatus) *entity.Transaction {
	return entity.NewTransaction(
		f.userID,
		entity.TransactionTypeExpense,
		f.account.ID,
		&f.category.ID,
		decimal.NewFromInt(amount),
		"test expense",
		time.Now().UTC(),
		status,
		false,
		nil,
	)
}

func (f *engineFixture) income(amount int64) *entity.Transaction {
	return entity.NewTransaction(
		f.userID,
		entity.TransactionTypeIncome,
		f.account.ID,
		nil,
		decimal.NewFromInt(amount),
		"test income",
		time.Now().UTC(),
		entity.TransactionStatusCompleted,
		false,
		nil,
	)
}

func TestEngine_ApplyTransactionCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("completed expense updates balance, budget and ledger", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)

		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(950)) {
			t.Errorf("expected balance 950, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(113)) {
			t.Errorf("expected remaining limit 113, got %s", got)
		}
		if outcome.BudgetStatus != valueobject.BudgetStatusOnTrack {
			t.Errorf("expected on-track status, got %s", outcome.BudgetStatus)
		}
		if !outcome.CategoryOnTrack {
			t.Error("expected category to stay on track")
		}
		if len(f.store.ledger) != 1 {
			t.Fatalf("expected 1 ledger posting, got %d", len(f.store.ledger))
		}
		if f.store.ledger[0].Kind != entity.LedgerEventApply {
			t.Errorf("expected apply posting, got %s", f.store.ledger[0].Kind)
		}
		if _, ok := f.store.transactions[tx.ID]; !ok {
			t.Error("expected transaction to be persisted")
		}
	})

	t.Run("pending expense is persisted without touching aggregates", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusPending)

		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance 1000, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit 163, got %s", got)
		}
		if len(f.store.ledger) != 0 {
			t.Errorf("expected no ledger postings, got %d", len(f.store.ledger))
		}
	})

	t.Run("income credits the account and skips the budget", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.income(200)

		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected balance 1200, got %s", got)
		}
		if outcome.Budget != nil {
			t.Error("expected no budget in outcome for income")
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit unchanged, got %s", got)
		}
	})

	t.Run("expense exhausting the budget flips the category off track", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(163, entity.TransactionStatusCompleted)

		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if outcome.BudgetStatus != valueobject.BudgetStatusOverLimit {
			t.Errorf("expected over-limit status, got %s", outcome.BudgetStatus)
		}
		if outcome.CategoryOnTrack {
			t.Error("expected category off track")
		}
		if f.store.categories[f.category.ID].OnTrack {
			t.Error("expected persisted on-track flag to be false")
		}
	})

	t.Run("expense without a budgeted category only moves the balance", func(t *testing.T) {
		f := newEngineFixture()
		unbudgeted := entity.NewCategory(f.userID, "Misc", entity.CategoryTypeExpense)
		f.store.categories[unbudgeted.ID] = unbudgeted

		tx := entity.NewTransaction(
			f.userID,
			entity.TransactionTypeExpense,
			f.account.ID,
			&unbudgeted.ID,
			decimal.NewFromInt(30),
			"no budget",
			time.Now().UTC(),
			entity.TransactionStatusCompleted,
			false,
			nil,
		)

		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome.Budget != nil {
			t.Error("expected no budget in outcome")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(970)) {
			t.Errorf("expected balance 970, got %s", got)
		}
	})

	t.Run("repeated apply is detected by the ledger guard", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)

		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error on repeat: %v", err)
		}

		if !outcome.AlreadyApplied {
			t.Error("expected repeat to report already applied")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(950)) {
			t.Errorf("expected balance still 950, got %s", got)
		}
		if len(f.store.ledger) != 1 {
			t.Errorf("expected 1 ledger posting, got %d", len(f.store.ledger))
		}
	})

	t.Run("repeated apply short-circuits on the idempotency store", func(t *testing.T) {
		f := newEngineFixture()
		f.engine = NewEngine(&fakeUnitOfWork{store: f.store}, newFakeIdempotencyStore(), nil)
		tx := f.expense(50, entity.TransactionStatusCompleted)

		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcome, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error on repeat: %v", err)
		}

		if !outcome.AlreadyApplied {
			t.Error("expected repeat to report already applied")
		}
		if len(f.store.ledger) != 1 {
			t.Errorf("expected 1 ledger posting, got %d", len(f.store.ledger))
		}
	})
}

func TestEngine_ApplyTransactionUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("amount change nets out to the difference", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated := *tx
		updated.Amount = decimal.NewFromInt(80)
		if _, err := f.engine.ApplyTransactionUpdate(ctx, tx, &updated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(920)) {
			t.Errorf("expected balance 920, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(83)) {
			t.Errorf("expected remaining limit 83, got %s", got)
		}
		if len(f.store.ledger) != 3 {
			t.Errorf("expected apply, reverse, apply postings, got %d", len(f.store.ledger))
		}
	})

	t.Run("pending to completed applies the effect once", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusPending)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated := *tx
		updated.Status = entity.TransactionStatusCompleted
		if _, err := f.engine.ApplyTransactionUpdate(ctx, tx, &updated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(950)) {
			t.Errorf("expected balance 950, got %s", got)
		}
	})

	t.Run("completed to pending reverses the effect", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated := *tx
		updated.Status = entity.TransactionStatusPending
		if _, err := f.engine.ApplyTransactionUpdate(ctx, tx, &updated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance restored to 1000, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit restored to 163, got %s", got)
		}
	})
}

func TestEngine_ApplyTransactionDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a completed expense restores aggregates", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := f.engine.ApplyTransactionDelete(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance restored to 1000, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit restored to 163, got %s", got)
		}
		if _, ok := f.store.transactions[tx.ID]; ok {
			t.Error("expected transaction row to be removed")
		}
	})

	t.Run("repeated delete is a no-op", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.engine.ApplyTransactionDelete(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		outcome, err := f.engine.ApplyTransactionDelete(ctx, tx)
		if err != nil {
			t.Fatalf("unexpected error on repeat: %v", err)
		}
		if !outcome.AlreadyApplied {
			t.Error("expected repeat delete to report already applied")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance still 1000, got %s", got)
		}
	})

	t.Run("deleting a pending expense leaves aggregates alone", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusPending)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := f.engine.ApplyTransactionDelete(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance 1000, got %s", got)
		}
	})

	t.Run("budget created after the apply is never credited", func(t *testing.T) {
		f := newEngineFixture()
		delete(f.store.budgets, f.budget.ID)
		tx := f.expense(100, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lateBudget := entity.NewBudget(f.userID, f.category.ID, decimal.NewFromInt(300))
		f.store.budgets[lateBudget.ID] = lateBudget

		if _, err := f.engine.ApplyTransactionDelete(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance restored to 1000, got %s", got)
		}
		if got := f.store.budgets[lateBudget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected remaining limit untouched at 300, got %s", got)
		}
	})

	t.Run("budget deleted after the apply only restores the balance", func(t *testing.T) {
		f := newEngineFixture()
		tx := f.expense(50, entity.TransactionStatusCompleted)
		if _, err := f.engine.ApplyTransactionCreate(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		delete(f.store.budgets, f.budget.ID)

		if _, err := f.engine.ApplyTransactionDelete(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance restored to 1000, got %s", got)
		}
	})
}

func TestEngine_Compensation(t *testing.T) {
	ctx := context.Background()

	t.Run("failed step rolls back earlier writes", func(t *testing.T) {
		f := newEngineFixture()
		f.store.failSetOnTrack = true
		tx := f.expense(50, entity.TransactionStatusCompleted)

		_, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err == nil {
			t.Fatal("expected an error")
		}
		var partial *domainerror.PartialFailureError
		if errors.As(err, &partial) {
			t.Fatalf("expected full compensation, got partial failure: %v", partial)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance rolled back to 1000, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit rolled back to 163, got %s", got)
		}
		if len(f.store.ledger) != 0 {
			t.Errorf("expected no ledger postings, got %d", len(f.store.ledger))
		}
	})

	t.Run("failed rollback surfaces as a partial failure", func(t *testing.T) {
		f := newEngineFixture()
		f.store.failSetOnTrack = true
		// The first UpdateBalance call applies, the second is the rollback.
		f.store.failBalanceUpdateAt = 2
		tx := f.expense(50, entity.TransactionStatusCompleted)

		_, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if err == nil {
			t.Fatal("expected an error")
		}

		var partial *domainerror.PartialFailureError
		if !errors.As(err, &partial) {
			t.Fatalf("expected a partial failure error, got %v", err)
		}

		uncompensated := partial.Uncompensated()
		found := false
		for _, step := range uncompensated {
			if step == domainerror.StepAccountBalance {
				found = true
			}
		}
		if !found {
			t.Errorf("expected account balance step to remain uncompensated, got %v", uncompensated)
		}
		// The budget rollback ran before the balance rollback failed.
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit rolled back to 163, got %s", got)
		}
	})

	t.Run("ledger append failure rolls back every step", func(t *testing.T) {
		f := newEngineFixture()
		f.store.failLedgerAppend = true
		tx := f.expense(50, entity.TransactionStatusCompleted)

		_, err := f.engine.ApplyTransactionCreate(ctx, tx)
		if !errors.Is(err, errInjected) {
			t.Fatalf("expected injected failure, got %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance rolled back to 1000, got %s", got)
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(163)) {
			t.Errorf("expected remaining limit rolled back to 163, got %s", got)
		}
		if f.store.categories[f.category.ID].OnTrack != true {
			t.Error("expected on-track flag restored")
		}
	})
}

func TestEngine_ApplyGoalContribution(t *testing.T) {
	ctx := context.Background()

	newGoalFixture := func(f *engineFixture, total, contribution int64) *entity.Goal {
		goal := entity.NewGoal(
			f.userID,
			"Emergency fund",
			"",
			decimal.NewFromInt(total),
			f.account.ID,
			decimal.NewFromInt(contribution),
			entity.ContributionIntervalMonthly,
			time.Now().UTC(),
		)
		f.store.goals[goal.ID] = goal
		return goal
	}

	t.Run("contribution debits the account and funds the goal", func(t *testing.T) {
		f := newEngineFixture()
		goal := newGoalFixture(f, 500, 100)

		tx, err := f.engine.ApplyGoalContribution(ctx, goal, decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected balance 900, got %s", got)
		}
		if got := f.store.goals[goal.ID].Balance; !got.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected goal balance 400, got %s", got)
		}
		stored, ok := f.store.transactions[tx.ID]
		if !ok {
			t.Fatal("expected contribution transaction to be persisted")
		}
		if !stored.IsCompleted() {
			t.Error("expected contribution transaction to be completed")
		}
		if stored.Type != entity.TransactionTypeExpense {
			t.Errorf("expected expense transaction, got %s", stored.Type)
		}
	})

	t.Run("contribution completing the goal marks it completed", func(t *testing.T) {
		f := newEngineFixture()
		goal := newGoalFixture(f, 100, 100)

		if _, err := f.engine.ApplyGoalContribution(ctx, goal, decimal.NewFromInt(100)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.store.goals[goal.ID].Status != entity.GoalStatusCompleted {
			t.Errorf("expected completed goal, got %s", f.store.goals[goal.ID].Status)
		}
		if !f.store.goals[goal.ID].Balance.IsZero() {
			t.Errorf("expected zero goal balance, got %s", f.store.goals[goal.ID].Balance)
		}
	})

	t.Run("insufficient account balance is rejected", func(t *testing.T) {
		f := newEngineFixture()
		goal := newGoalFixture(f, 5000, 2000)

		_, err := f.engine.ApplyGoalContribution(ctx, goal, decimal.NewFromInt(2000))
		if !errors.Is(err, domainerror.ErrInsufficientAccountBalance) {
			t.Fatalf("expected insufficient balance error, got %v", err)
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance untouched, got %s", got)
		}
	})
}

func TestOutcome_StatusDeteriorated(t *testing.T) {
	budget := entity.NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(100))

	tests := []struct {
		name     string
		previous valueobject.BudgetStatus
		current  valueobject.BudgetStatus
		want     bool
	}{
		{"on-track to need-attention", valueobject.BudgetStatusOnTrack, valueobject.BudgetStatusNeedAttention, true},
		{"on-track to over-limit", valueobject.BudgetStatusOnTrack, valueobject.BudgetStatusOverLimit, true},
		{"need-attention to over-limit", valueobject.BudgetStatusNeedAttention, valueobject.BudgetStatusOverLimit, true},
		{"unchanged on-track", valueobject.BudgetStatusOnTrack, valueobject.BudgetStatusOnTrack, false},
		{"recovery to on-track", valueobject.BudgetStatusOverLimit, valueobject.BudgetStatusOnTrack, false},
		{"over-limit to need-attention", valueobject.BudgetStatusOverLimit, valueobject.BudgetStatusNeedAttention, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := &Outcome{
				Budget:         budget,
				PreviousStatus: tt.previous,
				BudgetStatus:   tt.current,
			}
			if got := outcome.StatusDeteriorated(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
