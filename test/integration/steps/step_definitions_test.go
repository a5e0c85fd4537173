package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

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
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/controller"
	"github.com/yasasArt/financemate-backend/internal/integration/entrypoint/middleware"
	"github.com/yasasArt/financemate-backend/internal/integration/persistence"
	"github.com/yasasArt/financemate-backend/internal/integration/persistence/model"
	"github.com/yasasArt/financemate-backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	serverPort        int
	accessToken       string
	refreshToken      string
	currentUserID     uuid.UUID
	currentAccountID  uuid.UUID
	currentCategoryID uuid.UUID
	currentBudgetID   uuid.UUID
	currentGoalID     uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("financemate", map[string]any{
			"users":          &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"accounts":       &model.AccountModel{},
			"categories":     &model.CategoryModel{},
			"budgets":        &model.BudgetModel{},
			"transactions":   &model.TransactionModel{},
			"goals":          &model.GoalModel{},
			"ledger_events":  &model.LedgerEventModel{},
			"email_queue":    &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Account setup steps
	ctx.Given(`^an account exists with name "([^"]*)" and balance "([^"]*)"$`, test.anAccountExistsWithNameAndBalance)

	// Category and budget setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a budget exists for category "([^"]*)" with limit "([^"]*)"$`, test.aBudgetExistsForCategoryWithLimit)
	ctx.Given(`^a budget exists for category "([^"]*)" with limit "([^"]*)" and remaining "([^"]*)"$`, test.aBudgetExistsForCategoryWithLimitAndRemaining)

	// Transaction setup steps
	ctx.Given(`^a completed "([^"]*)" transaction exists with amount "([^"]*)"$`, test.aCompletedTransactionExistsWithAmount)
	ctx.Given(`^a completed expense transaction exists for category "([^"]*)" with amount "([^"]*)"$`, test.aCompletedExpenseTransactionExistsForCategory)
	ctx.Given(`^a pending expense transaction exists with amount "([^"]*)"$`, test.aPendingExpenseTransactionExistsWithAmount)

	// Goal setup steps
	ctx.Given(`^a goal exists with name "([^"]*)" and target "([^"]*)"$`, test.aGoalExistsWithNameAndTarget)
	ctx.Given(`^a goal exists with name "([^"]*)" and target "([^"]*)" and outstanding "([^"]*)"$`, test.aGoalExistsWithNameTargetAndOutstanding)
	ctx.Given(`^a completed goal exists with name "([^"]*)"$`, test.aCompletedGoalExistsWithName)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentAccountID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentBudgetID = uuid.Nil
	t.currentGoalID = uuid.Nil
	t.lastTransactionID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			accountRepo := persistence.NewAccountRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			budgetRepo := persistence.NewBudgetRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			goalRepo := persistence.NewGoalRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)
			unitOfWork := persistence.NewUnitOfWork(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			geminiService := adapters.NewGeminiService("", "")
			idempotencyStore := adapters.NewRedisIdempotencyStore(mock.NewRedis())

			// The email worker stays off so queued emails remain visible
			// to db assertions.
			emailService := email.NewService(emailQueueRepo, "http://localhost:3000")

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
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
				deleteUserUseCase,
				false,
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
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

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
			ginEngine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: ginEngine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		BudgetAlerts: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	return t.issueTokensFor(t.currentUserID, "test@example.com")
}

// iAmLoggedInAs switches the current logged in user to the given email,
// creating the user first when needed.
func (t *testContext) iAmLoggedInAs(email string) error {
	var userModel model.UserModel
	err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := t.createUser(email, "DefaultPass123!", "Test User"); err != nil {
			return err
		}
		if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	t.currentUserID = userModel.ID
	return t.issueTokensFor(userModel.ID, email)
}

func (t *testContext) issueTokensFor(userID uuid.UUID, email string) error {
	now := time.Now().UTC()

	accessTokenString, err := signToken(userID, email, "access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessTokenString

	refreshTokenString, err := signToken(userID, email, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshTokenString

	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      userID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	return t.db.DbConn.Create(refreshTokenModel).Error
}

func signToken(userID uuid.UUID, email, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(ttl)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "financemate",
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) anAccountExistsWithNameAndBalance(name, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	accountID := uuid.New()
	t.currentAccountID = accountID

	var existing int64
	t.db.DbConn.Model(&model.AccountModel{}).Where("user_id = ?", t.currentUserID).Count(&existing)

	now := time.Now().UTC()
	accountModel := &model.AccountModel{
		ID:        accountID,
		UserID:    t.currentUserID,
		Name:      name,
		Type:      "checking",
		Balance:   amount,
		IsDefault: existing == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(accountModel).Error
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		UserID:    t.currentUserID,
		Name:      name,
		Type:      categoryType,
		OnTrack:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aBudgetExistsForCategoryWithLimit(categoryName, limit string) error {
	return t.aBudgetExistsForCategoryWithLimitAndRemaining(categoryName, limit, limit)
}

func (t *testContext) aBudgetExistsForCategoryWithLimitAndRemaining(categoryName, limit, remaining string) error {
	var categoryModel model.CategoryModel
	if err := t.db.DbConn.Where("name = ? AND user_id = ?", categoryName, t.currentUserID).First(&categoryModel).Error; err != nil {
		return fmt.Errorf("category %q not found: %w", categoryName, err)
	}

	limitAmount, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", limit, err)
	}
	remainingAmount, err := decimal.NewFromString(remaining)
	if err != nil {
		return fmt.Errorf("invalid remaining %q: %w", remaining, err)
	}

	budgetID := uuid.New()
	t.currentBudgetID = budgetID

	now := time.Now().UTC()
	budgetModel := &model.BudgetModel{
		ID:             budgetID,
		UserID:         t.currentUserID,
		CategoryID:     categoryModel.ID,
		LimitAmount:    limitAmount,
		RemainingLimit: remainingAmount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return t.db.DbConn.Create(budgetModel).Error
}

func (t *testContext) aCompletedTransactionExistsWithAmount(transactionType, amount string) error {
	return t.createTransaction(transactionType, amount, nil, "completed")
}

func (t *testContext) aCompletedExpenseTransactionExistsForCategory(categoryName, amount string) error {
	var categoryModel model.CategoryModel
	if err := t.db.DbConn.Where("name = ? AND user_id = ?", categoryName, t.currentUserID).First(&categoryModel).Error; err != nil {
		return fmt.Errorf("category %q not found: %w", categoryName, err)
	}
	return t.createTransaction("expense", amount, &categoryModel.ID, "completed")
}

func (t *testContext) aPendingExpenseTransactionExistsWithAmount(amount string) error {
	return t.createTransaction("expense", amount, nil, "pending")
}

// createTransaction seeds a transaction row directly. Completed rows also
// get their apply posting in the ledger so the engine can reverse them.
func (t *testContext) createTransaction(transactionType, amount string, categoryID *uuid.UUID, status string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	transactionID := uuid.New()
	t.lastTransactionID = transactionID

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		ID:          transactionID,
		UserID:      t.currentUserID,
		Type:        transactionType,
		AccountID:   t.currentAccountID,
		CategoryID:  categoryID,
		Amount:      value,
		Description: "Seeded transaction",
		Date:        now,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.db.DbConn.Create(transactionModel).Error; err != nil {
		return err
	}

	if status != "completed" {
		return nil
	}

	signed := value
	if transactionType == "expense" {
		signed = value.Neg()
	}
	ledgerEvent := &model.LedgerEventModel{
		ID:            uuid.New(),
		TransactionID: transactionID,
		AccountID:     t.currentAccountID,
		Amount:        signed,
		Kind:          "apply",
		Sequence:      0,
		CreatedAt:     now,
	}

	return t.db.DbConn.Create(ledgerEvent).Error
}

func (t *testContext) aGoalExistsWithNameAndTarget(name, target string) error {
	return t.createGoal(name, target, target, "active")
}

func (t *testContext) aGoalExistsWithNameTargetAndOutstanding(name, target, outstanding string) error {
	return t.createGoal(name, target, outstanding, "active")
}

func (t *testContext) aCompletedGoalExistsWithName(name string) error {
	return t.createGoal(name, "1000", "0", "completed")
}

func (t *testContext) createGoal(name, target, outstanding, status string) error {
	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	outstandingAmount, err := decimal.NewFromString(outstanding)
	if err != nil {
		return fmt.Errorf("invalid outstanding %q: %w", outstanding, err)
	}

	goalID := uuid.New()
	t.currentGoalID = goalID

	now := time.Now().UTC()
	goalModel := &model.GoalModel{
		ID:                   goalID,
		UserID:               t.currentUserID,
		Name:                 name,
		TotalAmount:          targetAmount,
		Balance:              outstandingAmount,
		AccountID:            t.currentAccountID,
		ContributionAmount:   decimal.NewFromInt(100),
		ContributionInterval: "monthly",
		NextContributionDate: now.AddDate(0, 1, 0),
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	return t.db.DbConn.Create(goalModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{account_id}}", t.currentAccountID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.currentBudgetID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{goal_id}}", t.currentGoalID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(responseBody)

	return nil
}

// captureIdentifiers pulls resource IDs and tokens out of a success
// envelope so later steps can reference them via placeholders.
func (t *testContext) captureIdentifiers(body map[string]any) {
	data, ok := body["data"].(map[string]any)
	if !ok {
		return
	}

	if authData, ok := data["auth"].(map[string]any); ok {
		if token, ok := authData["access_token"].(string); ok && token != "" {
			t.accessToken = token
		}
		if token, ok := authData["refresh_token"].(string); ok && token != "" {
			t.refreshToken = token
		}
		if user, ok := authData["user"].(map[string]any); ok {
			if id, ok := parseIDField(user); ok {
				t.currentUserID = id
			}
		}
	}
	if tokens, ok := data["tokens"].(map[string]any); ok {
		if token, ok := tokens["access_token"].(string); ok && token != "" {
			t.accessToken = token
		}
		if token, ok := tokens["refresh_token"].(string); ok && token != "" {
			t.refreshToken = token
		}
	}

	if accountData, ok := data["account"].(map[string]any); ok {
		if id, ok := parseIDField(accountData); ok {
			t.currentAccountID = id
		}
	}
	if categoryData, ok := data["category"].(map[string]any); ok {
		if id, ok := parseIDField(categoryData); ok {
			t.currentCategoryID = id
		}
	}
	if budgetData, ok := data["budget"].(map[string]any); ok {
		if id, ok := parseIDField(budgetData); ok {
			t.currentBudgetID = id
		}
	}
	if transactionData, ok := data["transaction"].(map[string]any); ok {
		if id, ok := parseIDField(transactionData); ok {
			t.lastTransactionID = id
		}
	}
	if goalData, ok := data["goal"].(map[string]any); ok {
		if id, ok := parseIDField(goalData); ok {
			t.currentGoalID = id
		}
	}
	if contribution, ok := data["contribution"].(map[string]any); ok {
		if transactionData, ok := contribution["transaction"].(map[string]any); ok {
			if id, ok := parseIDField(transactionData); ok {
				t.lastTransactionID = id
			}
		}
	}
}

func parseIDField(object map[string]any) (uuid.UUID, bool) {
	idStr, ok := object["id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
