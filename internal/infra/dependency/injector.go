// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yasasArt/financemate-backend/config"
	"github.com/yasasArt/financemate-backend/internal/application/adapter"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/account"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/auth"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/budget"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/category"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/dashboard"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/goal"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/receipt"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/reconciliation"
	"github.com/yasasArt/financemate-backend/internal/application/usecase/transaction"
	"github.com/yasasArt/financemate-backend/internal/infra/server/router"
	"github.com/yasasArt/financemate-backend/internal/integration/adapters"
	"github.com/yasasArt/financemate-backend/internal/integration/email"
	"github.com/yasasArt/financemate-backend/internal/integration/email/templates"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/controller"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
	"github.com/yasasArt/financemate-backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	unitOfWork := persistence.NewUnitOfWork(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	geminiService := adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	idempotencyStore := newIdempotencyStore(&cfg.Redis)

	// Create email subsystem
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		emailSender = email.NewMockEmailSender()
	}
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create reconciliation engine
	alertNotifier := reconciliation.NewBudgetAlertNotifier(userRepo, categoryRepo, emailService)
	engine := reconciliation.NewEngine(unitOfWork, idempotencyStore, alertNotifier)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	deleteUserUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, transactionRepo)
	setDefaultAccountUseCase := account.NewSetDefaultAccountUseCase(accountRepo)
	verifyAccountUseCase := account.NewVerifyAccountUseCase(accountRepo, engine)
	rebuildAccountUseCase := account.NewRebuildAccountUseCase(accountRepo, engine)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(unitOfWork)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	getBudgetByCategoryUseCase := budget.NewGetBudgetByCategoryUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(unitOfWork)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(unitOfWork)
	verifyBudgetUseCase := budget.NewVerifyBudgetUseCase(budgetRepo, engine)
	rebuildBudgetUseCase := budget.NewRebuildBudgetUseCase(budgetRepo, engine)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(accountRepo, categoryRepo, engine)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, engine)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, engine)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, accountRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	contributeGoalUseCase := goal.NewContributeGoalUseCase(goalRepo, engine)

	// Create dashboard and receipt use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(accountRepo, transactionRepo, budgetRepo, goalRepo)
	extractReceiptUseCase := receipt.NewExtractReceiptUseCase(geminiService, categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		deleteUserUseCase,
		cfg.Server.SecureCookies,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		getAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
		setDefaultAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		getBudgetByCategoryUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		contributeGoalUseCase,
	)

	dashboardController := controller.NewDashboardController(getSummaryUseCase)
	receiptController := controller.NewReceiptController(extractReceiptUseCase)
	consistencyController := controller.NewConsistencyController(
		verifyAccountUseCase,
		rebuildAccountUseCase,
		verifyBudgetUseCase,
		rebuildBudgetUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		categoryController,
		budgetController,
		transactionController,
		goalController,
		dashboardController,
		receiptController,
		consistencyController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}

// newIdempotencyStore connects to Redis for the reconciliation engine's
// idempotency fast path. The engine works without it, so a bad Redis
// configuration degrades to ledger-only dedup instead of failing startup.
func newIdempotencyStore(cfg *config.RedisConfig) adapter.IdempotencyStore {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, idempotency store disabled", "error", err)
		return nil
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return adapters.NewRedisIdempotencyStore(redis.NewClient(opts))
}
