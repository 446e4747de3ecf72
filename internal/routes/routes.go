// Package routes defines the API routing configuration. It wires
// repositories, services and handlers together and groups endpoints by the
// authentication they require.
package routes

import (
	"takapay/internal/config"
	"takapay/internal/handlers"
	"takapay/internal/middleware"
	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/agent"
	"takapay/internal/services/auth"
	"takapay/internal/services/billing"
	"takapay/internal/services/card"
	"takapay/internal/services/dashboard"
	"takapay/internal/services/fee"
	"takapay/internal/services/platform"
	"takapay/internal/services/transaction"
	"takapay/internal/services/transfer"
	"takapay/internal/services/user"
	"takapay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	platformUserID := uint(config.GetIntEnv("PLATFORM_USER_ID", 1))

	// Repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	txRepo := repositories.NewTransactionRepository(repositories.DB)
	agentRepo := repositories.NewAgentRepository(repositories.DB)
	billerRepo := repositories.NewBillerRepository(repositories.DB)
	cardRepo := repositories.NewFundingCardRepository(repositories.DB)

	// Services
	fees := fee.NewCalculator()
	walletService := wallet.NewService(walletRepo, repositories.CacheService, wallet.Config{
		PlatformUserID: platformUserID,
	})
	agentService := agent.NewService(agentRepo, txRepo, repositories.CacheService)
	authService := auth.NewService(userRepo, agentService, walletService, platformUserID)
	txService := transaction.NewService(txRepo, userRepo, agentRepo, walletService, fees, transaction.Config{
		PlatformUserID: platformUserID,
	})
	transferService := transfer.NewService(txRepo, userRepo, walletService, fees, transfer.Config{
		PlatformUserID: platformUserID,
	})
	billingService := billing.NewService(billerRepo, txRepo, walletService, fees)
	userService := user.NewService(userRepo, txRepo)
	platformService := platform.NewService(walletRepo, txRepo, platformUserID)
	dashboardService := dashboard.NewService(txRepo)
	cardService := card.NewService(cardRepo, txRepo, walletService, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	txHandler := handlers.NewTransactionHandler(txService, repositories.CacheService)
	transferHandler := handlers.NewTransferHandler(transferService)
	billingHandler := handlers.NewBillingHandler(billingService)
	agentHandler := handlers.NewAgentHandler(agentService)
	adminHandler := handlers.NewAdminHandler(userService)
	platformHandler := handlers.NewPlatformHandler(platformService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	cardHandler := handlers.NewCardHandler(cardService)
	userHandler := handlers.NewUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TakaPay API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	// Public endpoints, rate limited against credential stuffing
	publicLimiter := limiter.New(limiter.Config{Max: 20})
	api.Post("/register", publicLimiter, authHandler.Register)
	api.Post("/register/agent", publicLimiter, authHandler.RegisterAgent)
	api.Post("/login", publicLimiter, authHandler.Login)
	api.Post("/refresh", publicLimiter, authHandler.RefreshToken)

	// Protected endpoints
	protected := api.Group("/", authMiddleware.Handler)
	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	protected.Get("/profile", userHandler.GetProfile)

	// Wallet
	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)

	// Funding cards and top-ups
	protected.Post("/cards", middleware.HasPermission(models.PermissionCardWrite), cardHandler.LinkCard)
	protected.Get("/cards", cardHandler.ListCards)
	protected.Delete("/cards/:id", middleware.HasPermission(models.PermissionCardWrite), cardHandler.RemoveCard)
	protected.Post("/wallet/add-money", middleware.HasPermission(models.PermissionWalletWrite), cardHandler.AddMoney)

	// Transactions
	protected.Post("/transactions/send", middleware.HasPermission(models.PermissionTransactionWrite), txHandler.SendMoney)
	protected.Post("/transactions/cash-in", middleware.AgentOnly, txHandler.CashIn)
	protected.Post("/transactions/cash-out", middleware.HasPermission(models.PermissionTransactionWrite), txHandler.CashOut)
	protected.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetHistory)
	protected.Get("/transactions/:id", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetTransaction)

	// Bank transfers
	protected.Get("/transfers/quote", transferHandler.QuoteFee)
	protected.Post("/transfers", middleware.HasPermission(models.PermissionTransactionWrite), transferHandler.InitiateTransfer)

	// Bill payments
	protected.Get("/billers", middleware.HasPermission(models.PermissionBillingRead), billingHandler.ListBillers)
	protected.Get("/billers/:id", middleware.HasPermission(models.PermissionBillingRead), billingHandler.GetBiller)
	protected.Post("/bills/pay", middleware.HasPermission(models.PermissionBillingWrite), billingHandler.PayBill)
	protected.Get("/bills", middleware.HasPermission(models.PermissionBillingRead), billingHandler.PaymentHistory)

	// Dashboard
	protected.Get("/dashboard", dashboardHandler.GetUserOverview)

	// Admin console
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminOnly)

	admin.Get("/dashboard", dashboardHandler.GetOverview)

	admin.Post("/users/list", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListUsers)
	admin.Get("/users/:id", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUser)
	admin.Get("/users/:id/transactions", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUserTransactions)
	admin.Put("/users/:id/status", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.UpdateUserStatus)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.DeleteUser)

	admin.Get("/agents", middleware.HasPermission(models.PermissionAgentRead), agentHandler.ListAgents)
	admin.Get("/agents/:id", middleware.HasPermission(models.PermissionAgentRead), agentHandler.GetAgent)
	admin.Get("/agents/:id/transactions", middleware.HasPermission(models.PermissionAgentRead), agentHandler.GetAgentTransactions)
	admin.Post("/agents/:id/approve", middleware.HasPermission(models.PermissionAgentWrite), agentHandler.ApproveAgent)
	admin.Post("/agents/:id/reject", middleware.HasPermission(models.PermissionAgentWrite), agentHandler.RejectAgent)
	admin.Post("/agents/:id/suspend", middleware.HasPermission(models.PermissionAgentWrite), agentHandler.SuspendAgent)
	admin.Post("/agents/:id/reactivate", middleware.HasPermission(models.PermissionAgentWrite), agentHandler.ReactivateAgent)

	admin.Post("/billers", middleware.HasPermission(models.PermissionBillingWrite), billingHandler.CreateBiller)
	admin.Put("/billers/:id", middleware.HasPermission(models.PermissionBillingWrite), billingHandler.UpdateBiller)
	admin.Put("/billers/:id/status", middleware.HasPermission(models.PermissionBillingWrite), billingHandler.UpdateBillerStatus)
	admin.Delete("/billers/:id", middleware.HasPermission(models.PermissionBillingWrite), billingHandler.DeleteBiller)

	admin.Put("/wallets/:id/lock", middleware.HasPermission(models.PermissionWriteAdmin), walletHandler.LockWallet)
	admin.Put("/wallets/:id/unlock", middleware.HasPermission(models.PermissionWriteAdmin), walletHandler.UnlockWallet)

	admin.Post("/transfers/:id/complete", middleware.HasPermission(models.PermissionWriteAdmin), transferHandler.CompleteTransfer)
	admin.Post("/transfers/:id/fail", middleware.HasPermission(models.PermissionWriteAdmin), transferHandler.FailTransfer)

	admin.Get("/platform/stats", middleware.HasPermission(models.PermissionReadAdmin), platformHandler.GetStats)
	admin.Get("/platform/transactions", middleware.HasPermission(models.PermissionReadAdmin), platformHandler.GetTransactions)
	admin.Post("/platform/reconcile", middleware.HasPermission(models.PermissionReadAdmin), platformHandler.Reconcile)
}
