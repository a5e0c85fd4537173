// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yasasArt/financemate-backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	Description          string          `gorm:"type:text"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Balance              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContributionAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ContributionInterval string          `gorm:"type:varchar(10);not null"`
	NextContributionDate time.Time       `gorm:"type:date;not null"`
	Status               string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
	User    *UserModel    `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:                   m.ID,
		UserID:               m.UserID,
		Name:                 m.Name,
		Description:          m.Description,
		TotalAmount:          m.TotalAmount,
		Balance:              m.Balance,
		AccountID:            m.AccountID,
		ContributionAmount:   m.ContributionAmount,
		ContributionInterval: entity.ContributionInterval(m.ContributionInterval),
		NextContributionDate: m.NextContributionDate,
		Status:               entity.GoalStatus(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// GoalFromEntity converts a domain Goal entity to a GoalModel.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:                   goal.ID,
		UserID:               goal.UserID,
		Name:                 goal.Name,
		Description:          goal.Description,
		TotalAmount:          goal.TotalAmount,
		Balance:              goal.Balance,
		AccountID:            goal.AccountID,
		ContributionAmount:   goal.ContributionAmount,
		ContributionInterval: string(goal.ContributionInterval),
		NextContributionDate: goal.NextContributionDate,
		Status:               string(goal.Status),
		CreatedAt:            goal.CreatedAt,
		UpdatedAt:            goal.UpdatedAt,
	}
}
