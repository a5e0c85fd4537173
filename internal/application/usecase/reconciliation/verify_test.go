package reconciliation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

func TestEngine_VerifyAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("balance matching the transaction fold is consistent", func(t *testing.T) {
		f := newEngineFixture()
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.expense(50, entity.TransactionStatusCompleted)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.income(200)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The fixture account starts at 1000 without backing transactions,
		// so only the delta since then is recomputable.
		f.store.accounts[f.account.ID].Balance = decimal.NewFromInt(150)

		output, err := f.engine.VerifyAccount(ctx, f.account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Consistent {
			t.Errorf("expected consistent, stored %s computed %s", output.StoredBalance, output.ComputedBalance)
		}
		if !output.ComputedBalance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected computed balance 150, got %s", output.ComputedBalance)
		}
	})

	t.Run("drifted balance is reported without being touched", func(t *testing.T) {
		f := newEngineFixture()
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.income(200)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := f.engine.VerifyAccount(ctx, f.account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Consistent {
			t.Error("expected drift to be reported")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected stored balance untouched at 1200, got %s", got)
		}
	})
}

func TestEngine_RebuildAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("drifted balance is rewritten from the transaction fold", func(t *testing.T) {
		f := newEngineFixture()
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.income(200)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.store.accounts[f.account.ID].Balance = decimal.NewFromInt(9999)

		output, err := f.engine.RebuildAccount(ctx, f.account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Consistent {
			t.Error("expected the pre-rebuild state to report drift")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected balance rewritten to 200, got %s", got)
		}
	})

	t.Run("consistent balance is left alone", func(t *testing.T) {
		f := newEngineFixture()
		f.store.accounts[f.account.ID].Balance = decimal.Zero

		output, err := f.engine.RebuildAccount(ctx, f.account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Consistent {
			t.Error("expected consistent")
		}
		if got := f.store.accounts[f.account.ID].Balance; !got.Equal(decimal.Zero) {
			t.Errorf("expected balance still 0, got %s", got)
		}
	})
}

func TestEngine_VerifyBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("remaining limit matching completed spending is consistent", func(t *testing.T) {
		f := newEngineFixture()
		f.store.budgets[f.budget.ID].RemainingLimit = decimal.NewFromInt(650)
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.expense(150, entity.TransactionStatusCompleted)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := f.engine.VerifyBudget(ctx, f.budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Consistent {
			t.Errorf("expected consistent, stored %s computed %s", output.StoredRemaining, output.ComputedRemaining)
		}
		if !output.ComputedRemaining.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected computed remaining 500, got %s", output.ComputedRemaining)
		}
	})

	t.Run("pending expenses do not count against the budget", func(t *testing.T) {
		f := newEngineFixture()
		f.store.budgets[f.budget.ID].RemainingLimit = decimal.NewFromInt(650)
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.expense(150, entity.TransactionStatusPending)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := f.engine.VerifyBudget(ctx, f.budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Consistent {
			t.Errorf("expected consistent, stored %s computed %s", output.StoredRemaining, output.ComputedRemaining)
		}
	})
}

func TestEngine_RebuildBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("drifted remaining limit is rewritten and the category refreshed", func(t *testing.T) {
		f := newEngineFixture()
		f.store.budgets[f.budget.ID].RemainingLimit = decimal.NewFromInt(650)
		if _, err := f.engine.ApplyTransactionCreate(ctx, f.expense(700, entity.TransactionStatusCompleted)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Simulate a crashed compensation leaving the aggregate stale.
		f.store.budgets[f.budget.ID].RemainingLimit = decimal.NewFromInt(650)
		f.store.categories[f.category.ID].OnTrack = true

		output, err := f.engine.RebuildBudget(ctx, f.budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Consistent {
			t.Error("expected the pre-rebuild state to report drift")
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(-50)) {
			t.Errorf("expected remaining rewritten to -50, got %s", got)
		}
		// 700 of 650 spent puts the budget over its limit.
		if f.store.categories[f.category.ID].OnTrack {
			t.Error("expected category flagged off track after rebuild")
		}
	})

	t.Run("consistent remaining limit is left alone", func(t *testing.T) {
		f := newEngineFixture()
		f.store.budgets[f.budget.ID].RemainingLimit = decimal.NewFromInt(650)

		output, err := f.engine.RebuildBudget(ctx, f.budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Consistent {
			t.Error("expected consistent")
		}
		if got := f.store.budgets[f.budget.ID].RemainingLimit; !got.Equal(decimal.NewFromInt(650)) {
			t.Errorf("expected remaining still 650, got %s", got)
		}
	})
}
