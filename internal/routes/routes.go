// Package routes wires repositories, services, and handlers into the
// fiber app and declares the HTTP surface.
package routes

import (
	"aileana/internal/config"
	"aileana/internal/handlers"
	"aileana/internal/middleware"
	"aileana/internal/repositories"
	"aileana/internal/services/auth"
	"aileana/internal/services/call"
	"aileana/internal/services/payment"
	"aileana/internal/services/payment/monnify"
	"aileana/internal/services/user"
	"aileana/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	paymentRepo := repositories.NewPaymentRepository(db)
	callRepo := repositories.NewCallRepository(db)

	walletService := wallet.NewService(walletRepo, repositories.CacheService)
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, walletService)

	mode := config.PaymentsMode()
	var gateway payment.Gateway
	if mode != config.PaymentsModeOffline {
		gateway = monnify.NewClient(config.Monnify())
	}
	paymentService := payment.NewService(paymentRepo, userRepo, walletService, gateway, mode)

	callService := call.NewService(callRepo, userRepo, walletService, config.CallRatePerMinute())

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	callHandler := handlers.NewCallHandler(callService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// The webhook authenticates itself by signature, not by bearer
	// token, so it stays outside the auth middleware.
	api.Post("/payments/webhook/monnify", paymentHandler.MonnifyWebhook)

	// Protected routes
	protected := api.Use(middleware.AuthRequired())

	protected.Get("/me", userHandler.GetProfile)

	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/me", walletHandler.GetWallet)
	walletGroup.Get("/transactions", walletHandler.GetTransactions)
	walletGroup.Post("/deduct", walletHandler.Deduct)
	walletGroup.Post("/topup/initialize", walletHandler.InitializeTopup)

	protected.Get("/payments/verify/:paymentReference", paymentHandler.VerifyPayment)

	callGroup := protected.Group("/calls")
	callGroup.Post("/initiate", callHandler.InitiateCall)
	callGroup.Patch("/update", callHandler.UpdateCallStatus)
	callGroup.Get("/history", callHandler.GetCallHistory)
	callGroup.Get("/:callId", callHandler.GetCall)
}
