package reconciliation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
)

// fakeStore keeps every fake repository over one set of maps so a test can
// inspect the whole state after an engine operation.
type fakeStore struct {
	accounts     map[uuid.UUID]*entity.Account
	categories   map[uuid.UUID]*entity.Category
	budgets      map[uuid.UUID]*entity.Budget
	transactions map[uuid.UUID]*entity.Transaction
	goals        map[uuid.UUID]*entity.Goal
	ledger       []*entity.LedgerEvent

	// Failure injection. failBalanceUpdateAt fails the Nth UpdateBalance
	// call (1-based); zero disables it.
	failBalanceUpdateAt   int
	balanceUpdateCalls    int
	failRemainingUpdate   bool
	failSetOnTrack        bool
	failLedgerAppend      bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[uuid.UUID]*entity.Account),
		categories:   make(map[uuid.UUID]*entity.Category),
		budgets:      make(map[uuid.UUID]*entity.Budget),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		goals:        make(map[uuid.UUID]*entity.Goal),
	}
}

func (s *fakeStore) repositorySet() adapter.RepositorySet {
	return adapter.RepositorySet{
		Accounts:     &fakeAccountRepository{store: s},
		Categories:   &fakeCategoryRepository{store: s},
		Budgets:      &fakeBudgetRepository{store: s},
		Transactions: &fakeTransactionRepository{store: s},
		Goals:        &fakeGoalRepository{store: s},
		Ledger:       &fakeLedgerRepository{store: s},
	}
}

// fakeUnitOfWork runs the function directly against the shared store. It
// deliberately performs no rollback so tests observe the engine's own
// compensation behavior.
type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos adapter.RepositorySet) error) error {
	return fn(ctx, u.store.repositorySet())
}

type fakeAccountRepository struct {
	store *fakeStore
}

func (r *fakeAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.store.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var accounts []*entity.Account
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	r.store.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	r.store.balanceUpdateCalls++
	if r.store.failBalanceUpdateAt > 0 && r.store.balanceUpdateCalls == r.store.failBalanceUpdateAt {
		return domainerror.ErrAccountNotFound
	}
	account, ok := r.store.accounts[id]
	if !ok {
		return domainerror.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

func (r *fakeAccountRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			account.IsDefault = false
		}
	}
	return nil
}

func (r *fakeAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.accounts, id)
	return nil
}

type fakeCategoryRepository struct {
	store *fakeStore
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.store.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categories []*entity.Category
	for _, category := range r.store.categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *fakeCategoryRepository) FindByUserAndType(ctx context.Context, userID uuid.UUID, categoryType entity.CategoryType) ([]*entity.Category, error) {
	var categories []*entity.Category
	for _, category := range r.store.categories {
		if category.UserID == userID && category.Type == categoryType {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *fakeCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) SetOnTrack(ctx context.Context, id uuid.UUID, onTrack bool) error {
	if r.store.failSetOnTrack {
		return domainerror.ErrCategoryNotFound
	}
	category, ok := r.store.categories[id]
	if !ok {
		return domainerror.ErrCategoryNotFound
	}
	category.OnTrack = onTrack
	return nil
}

func (r *fakeCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.categories, id)
	return nil
}

func (r *fakeCategoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, category := range r.store.categories {
		if category.UserID == userID && category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range r.store.transactions {
		if tx.CategoryID != nil && *tx.CategoryID == id {
			count++
		}
	}
	return count, nil
}

type fakeBudgetRepository struct {
	store *fakeStore
}

func (r *fakeBudgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	for _, existing := range r.store.budgets {
		if existing.CategoryID == budget.CategoryID {
			return domainerror.ErrBudgetAlreadyExists
		}
	}
	r.store.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, ok := r.store.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *fakeBudgetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBudgetRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) (*entity.Budget, error) {
	for _, budget := range r.store.budgets {
		if budget.CategoryID == categoryID {
			copied := *budget
			return &copied, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepository) FindByCategoryIDForUpdate(ctx context.Context, categoryID uuid.UUID) (*entity.Budget, error) {
	return r.FindByCategoryID(ctx, categoryID)
}

func (r *fakeBudgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var budgets []*entity.Budget
	for _, budget := range r.store.budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (r *fakeBudgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	r.store.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) UpdateRemainingLimit(ctx context.Context, id uuid.UUID, remainingLimit decimal.Decimal) error {
	if r.store.failRemainingUpdate {
		return domainerror.ErrBudgetNotFound
	}
	budget, ok := r.store.budgets[id]
	if !ok {
		return domainerror.ErrBudgetNotFound
	}
	budget.RemainingLimit = remainingLimit
	return nil
}

func (r *fakeBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.budgets, id)
	return nil
}

func (r *fakeBudgetRepository) ExistsByCategoryID(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	for _, budget := range r.store.budgets {
		if budget.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTransactionRepository struct {
	store *fakeStore
}

func (r *fakeTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.store.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTransactionRepository) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	tx, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.TransactionWithCategory{Transaction: tx}, nil
}

func (r *fakeTransactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	result := &entity.TransactionListResult{}
	for _, tx := range r.store.transactions {
		if tx.UserID == filter.UserID {
			result.Transactions = append(result.Transactions, &entity.TransactionWithCategory{Transaction: tx})
			result.Total++
		}
	}
	return result, nil
}

func (r *fakeTransactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	totals := &adapter.TransactionTotals{}
	for _, tx := range r.store.transactions {
		if tx.UserID != filter.UserID || !tx.IsCompleted() {
			continue
		}
		if tx.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(tx.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(tx.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *fakeTransactionRepository) GetSpendingByCategory(ctx context.Context, userID uuid.UUID, limit int) ([]*adapter.CategorySpending, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) SumCompletedByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range r.store.transactions {
		if tx.AccountID == accountID && tx.IsCompleted() {
			sum = sum.Add(tx.SignedAmount())
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepository) SumCompletedExpensesByCategory(ctx context.Context, categoryID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range r.store.transactions {
		if tx.CategoryID != nil && *tx.CategoryID == categoryID &&
			tx.Type == entity.TransactionTypeExpense && tx.IsCompleted() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range r.store.transactions {
		if tx.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	r.store.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.transactions, id)
	return nil
}

type fakeGoalRepository struct {
	store *fakeStore
}

func (r *fakeGoalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	r.store.goals[goal.ID] = goal
	return nil
}

func (r *fakeGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, ok := r.store.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	copied := *goal
	return &copied, nil
}

func (r *fakeGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	r.store.goals[goal.ID] = goal
	return nil
}

func (r *fakeGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.goals, id)
	return nil
}

type fakeLedgerRepository struct {
	store *fakeStore
}

// errInjected stands in for an arbitrary storage failure.
var errInjected = errors.New("injected storage failure")

func (r *fakeLedgerRepository) Append(ctx context.Context, event *entity.LedgerEvent) error {
	if r.store.failLedgerAppend {
		return errInjected
	}
	for _, existing := range r.store.ledger {
		if existing.TransactionID == event.TransactionID &&
			existing.Kind == event.Kind &&
			existing.Sequence == event.Sequence {
			return domainerror.ErrAlreadyApplied
		}
	}
	r.store.ledger = append(r.store.ledger, event)
	return nil
}

func (r *fakeLedgerRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*entity.LedgerEvent, error) {
	var events []*entity.LedgerEvent
	for _, event := range r.store.ledger {
		if event.TransactionID == transactionID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (r *fakeLedgerRepository) CountByTransactionAndKind(ctx context.Context, transactionID uuid.UUID, kind entity.LedgerEventKind) (int64, error) {
	var count int64
	for _, event := range r.store.ledger {
		if event.TransactionID == transactionID && event.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (r *fakeLedgerRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, event := range r.store.ledger {
		if event.AccountID == accountID {
			sum = sum.Add(event.Amount)
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepository) SumByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, event := range r.store.ledger {
		if event.BudgetID != nil && *event.BudgetID == budgetID {
			sum = sum.Add(event.Amount)
		}
	}
	return sum, nil
}

// fakeIdempotencyStore is an in-memory key set with TTLs ignored.
type fakeIdempotencyStore struct {
	keys map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) Release(ctx context.Context, key string) error {
	delete(s.keys, key)
	return nil
}
