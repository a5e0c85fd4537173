// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface over
// the append-only ledger_events table.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Append records a new posting. The unique index over (transaction, kind,
// sequence) turns a concurrent duplicate into ErrAlreadyApplied.
func (r *ledgerRepository) Append(ctx context.Context, event *entity.LedgerEvent) error {
	eventModel := model.LedgerEventFromEntity(event)
	if err := r.db.WithContext(ctx).Create(eventModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerror.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

// FindByTransaction retrieves all postings recorded for a transaction.
func (r *ledgerRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*entity.LedgerEvent, error) {
	var eventModels []model.LedgerEventModel
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&eventModels)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.LedgerEvent, len(eventModels))
	for i, em := range eventModels {
		events[i] = em.ToEntity()
	}
	return events, nil
}

// CountByTransactionAndKind returns how many postings of the given kind
// exist for a transaction.
func (r *ledgerRepository) CountByTransactionAndKind(ctx context.Context, transactionID uuid.UUID, kind entity.LedgerEventKind) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LedgerEventModel{}).
		Where("transaction_id = ?", transactionID).
		Where("kind = ?", string(kind)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SumByAccount folds the log into the net amount posted to an account.
func (r *ledgerRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.LedgerEventModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("account_id = ?", accountID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByBudget folds the log into the net amount posted to a budget.
func (r *ledgerRepository) SumByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.LedgerEventModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("budget_id = ?", budgetID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
