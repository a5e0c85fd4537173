// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// LedgerEventModel represents the ledger_events table: the append-only
// posting log behind account balances and budget remaining limits. The
// unique index over (transaction, kind, sequence) is the durable
// idempotency guard for reconciliation operations.
type LedgerEventModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_posting,priority:1"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BudgetID      *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind          string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_ledger_posting,priority:2"`
	Sequence      int             `gorm:"not null;uniqueIndex:idx_ledger_posting,priority:3"`
	CreatedAt     time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the LedgerEventModel.
func (LedgerEventModel) TableName() string {
	return "ledger_events"
}

// ToEntity converts a LedgerEventModel to a domain LedgerEvent entity.
func (m *LedgerEventModel) ToEntity() *entity.LedgerEvent {
	return &entity.LedgerEvent{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		BudgetID:      m.BudgetID,
		Amount:        m.Amount,
		Kind:          entity.LedgerEventKind(m.Kind),
		Sequence:      m.Sequence,
		CreatedAt:     m.CreatedAt,
	}
}

// LedgerEventFromEntity converts a domain LedgerEvent entity to a LedgerEventModel.
func LedgerEventFromEntity(event *entity.LedgerEvent) *LedgerEventModel {
	return &LedgerEventModel{
		ID:            event.ID,
		TransactionID: event.TransactionID,
		AccountID:     event.AccountID,
		BudgetID:      event.BudgetID,
		Amount:        event.Amount,
		Kind:          string(event.Kind),
		Sequence:      event.Sequence,
		CreatedAt:     event.CreatedAt,
	}
}
