// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              string          `gorm:"type:varchar(10);not null;index"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Date              time.Time       `gorm:"type:date;not null;index"`
	Status            string          `gorm:"type:varchar(10);not null;index"`
	IsRecurring       bool            `gorm:"default:false"`
	RecurringInterval *string         `gorm:"type:varchar(10)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	var interval *entity.RecurringInterval
	if m.RecurringInterval != nil {
		v := entity.RecurringInterval(*m.RecurringInterval)
		interval = &v
	}

	return &entity.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Type:              entity.TransactionType(m.Type),
		AccountID:         m.AccountID,
		CategoryID:        m.CategoryID,
		Amount:            m.Amount,
		Description:       m.Description,
		Date:              m.Date,
		Status:            entity.TransactionStatus(m.Status),
		IsRecurring:       m.IsRecurring,
		RecurringInterval: interval,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with a preloaded
// category to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var interval *string
	if transaction.RecurringInterval != nil {
		v := string(*transaction.RecurringInterval)
		interval = &v
	}

	return &TransactionModel{
		ID:                transaction.ID,
		UserID:            transaction.UserID,
		Type:              string(transaction.Type),
		AccountID:         transaction.AccountID,
		CategoryID:        transaction.CategoryID,
		Amount:            transaction.Amount,
		Description:       transaction.Description,
		Date:              transaction.Date,
		Status:            string(transaction.Status),
		IsRecurring:       transaction.IsRecurring,
		RecurringInterval: interval,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}
