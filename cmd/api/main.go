package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/config"
	"github.com/sellhub/pos-api/internal/infrastructure/database"
	"github.com/sellhub/pos-api/internal/infrastructure/repository"
	"github.com/sellhub/pos-api/internal/presentation/http/handler"
	"github.com/sellhub/pos-api/internal/presentation/http/routes"
	"github.com/sellhub/pos-api/pkg/clock"
	"github.com/sellhub/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	taxRepo := repository.NewTaxTypeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	transactionProductRepo := repository.NewTransactionProductRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	exchangeRepo := repository.NewExchangeRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	clk := clock.System()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	discountService := service.NewDiscountService(discountRepo, productRepo, clk)
	taxService := service.NewTaxService(taxRepo)
	transactionService := service.NewTransactionService(
		transactionRepo,
		transactionProductRepo,
		productRepo,
		customerRepo,
		discountRepo,
		taxRepo,
		clk,
	)
	settlementService := service.NewSettlementService(transactionRepo, customerRepo, reservationRepo)
	refundService := service.NewRefundService(refundRepo, transactionRepo, clk)
	exchangeService := service.NewExchangeService(exchangeRepo, transactionRepo, productRepo, clk)
	reservationService := service.NewReservationService(reservationRepo, customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(transactionService, settlementService),
		Refund:      handler.NewRefundHandler(refundService),
		Exchange:    handler.NewExchangeHandler(exchangeService),
		Discount:    handler.NewDiscountHandler(discountService),
		Tax:         handler.NewTaxHandler(taxService),
		Reservation: handler.NewReservationHandler(reservationService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
