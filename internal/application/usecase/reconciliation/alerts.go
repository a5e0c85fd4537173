package reconciliation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/domain/valueobject"
)

// BudgetAlertNotifier queues an email whenever a reconciliation operation
// pushes a budget into the need-attention or over-limit band. Lookups and
// queueing happen after the operation committed; failures are logged and
// never propagated.
type BudgetAlertNotifier struct {
	userRepository     adapter.UserRepository
	categoryRepository adapter.CategoryRepository
	emailService       adapter.EmailService
}

// NewBudgetAlertNotifier creates a new BudgetAlertNotifier.
func NewBudgetAlertNotifier(
	userRepository adapter.UserRepository,
	categoryRepository adapter.CategoryRepository,
	emailService adapter.EmailService,
) *BudgetAlertNotifier {
	return &BudgetAlertNotifier{
		userRepository:     userRepository,
		categoryRepository: categoryRepository,
		emailService:       emailService,
	}
}

// BudgetStatusChanged implements Notifier.
func (n *BudgetAlertNotifier) BudgetStatusChanged(ctx context.Context, userID uuid.UUID, outcome *Outcome) {
	if outcome.Budget == nil {
		return
	}

	user, err := n.userRepository.FindByID(ctx, userID)
	if err != nil {
		slog.Warn("Failed to load user for budget alert", "userId", userID, "error", err)
		return
	}
	if !user.BudgetAlerts {
		return
	}

	category, err := n.categoryRepository.FindByID(ctx, outcome.Budget.CategoryID)
	if err != nil {
		slog.Warn("Failed to load category for budget alert", "categoryId", outcome.Budget.CategoryID, "error", err)
		return
	}

	input := adapter.QueueBudgetAlertInput{
		UserEmail:      user.Email,
		UserName:       user.Name,
		CategoryName:   category.Name,
		BudgetLimit:    outcome.Budget.Limit.StringFixed(2),
		RemainingLimit: outcome.Budget.RemainingLimit.StringFixed(2),
		SpentPercent:   valueobject.SpentPercentage(outcome.Budget.Limit, outcome.Budget.RemainingLimit),
		Status:         string(outcome.BudgetStatus),
	}
	if err := n.emailService.QueueBudgetAlertEmail(ctx, input); err != nil {
		slog.Warn("Failed to queue budget alert email", "userId", userID, "error", err)
	}
}
