// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/entity"
	domainerror "github.com/yasasArt/financemate-backend/internal/domain/error"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueBudgetAlertEmail queues a budget alert notification.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	templateType := entity.TemplateBudgetNeedAttention
	subject := fmt.Sprintf("Your %s budget needs attention - FinanceMate", input.CategoryName)
	if input.Status == string(valueobject.BudgetStatusOverLimit) {
		templateType = entity.TemplateBudgetOverLimit
		subject = fmt.Sprintf("Your %s budget is over its limit - FinanceMate", input.CategoryName)
	}

	templateData := map[string]interface{}{
		"user_name":       input.UserName,
		"category_name":   input.CategoryName,
		"budget_limit":    input.BudgetLimit,
		"remaining_limit": input.RemainingLimit,
		"spent_percent":   input.SpentPercent,
		"status":          input.Status,
		"budgets_url":     s.appBaseURL + "/budgets",
	}

	job := entity.NewEmailJob(
		templateType,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget alert email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
