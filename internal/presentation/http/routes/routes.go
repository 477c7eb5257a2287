package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellhub/pos-api/internal/config"
	domainRepo "github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/internal/presentation/http/handler"
	"github.com/sellhub/pos-api/internal/presentation/http/middleware"
	"github.com/sellhub/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Refund      *handler.RefundHandler
	Exchange    *handler.ExchangeHandler
	Discount    *handler.DiscountHandler
	Tax         *handler.TaxHandler
	Reservation *handler.ReservationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerTransactionRoutes(protected, h, deps)
	registerRefundRoutes(protected, h)
	registerExchangeRoutes(protected, h)
	registerDiscountRoutes(protected, h)
	registerTaxRoutes(protected, h)
	registerReservationRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/balance", h.Customer.GetBalance)
		customers.PUT("/:id/balance", h.Customer.SetBalance)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// Creation and settlement use idempotency middleware to prevent
		// duplicates from retried requests.
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Create)
		transactions.GET("/due", h.Transaction.ListDue)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.POST("/:id/bill", h.Transaction.Bill)
		transactions.POST("/:id/hold", h.Transaction.Hold)
		transactions.POST("/:id/cancel", h.Transaction.Cancel)
		transactions.POST("/:id/settle", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Settle)
	}
}

func registerRefundRoutes(protected *gin.RouterGroup, h *Handlers) {
	refunds := protected.Group("/refunds")
	{
		refunds.GET("", h.Refund.List)
		refunds.POST("", h.Refund.Create)
		refunds.GET("/:id", h.Refund.Get)
	}
}

func registerExchangeRoutes(protected *gin.RouterGroup, h *Handlers) {
	exchanges := protected.Group("/exchanges")
	{
		exchanges.GET("", h.Exchange.List)
		exchanges.POST("", h.Exchange.Create)
		exchanges.GET("/:id", h.Exchange.Get)
	}
}

func registerDiscountRoutes(protected *gin.RouterGroup, h *Handlers) {
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.POST("", h.Discount.Create)
		discounts.GET("/:id", h.Discount.Get)
		discounts.PUT("/:id", h.Discount.Update)
		discounts.DELETE("/:id", h.Discount.Delete)
		discounts.GET("/:id/eligible-products", h.Discount.EligibleProducts)
	}
}

func registerTaxRoutes(protected *gin.RouterGroup, h *Handlers) {
	taxes := protected.Group("/taxes")
	{
		taxes.GET("", h.Tax.List)
		taxes.POST("", h.Tax.Create)
		taxes.GET("/:id", h.Tax.Get)
		taxes.PUT("/:id", h.Tax.Update)
		taxes.DELETE("/:id", h.Tax.Delete)
	}
}

func registerReservationRoutes(protected *gin.RouterGroup, h *Handlers) {
	reservations := protected.Group("/reservations")
	{
		reservations.POST("", h.Reservation.Create)
		reservations.GET("/:id", h.Reservation.Get)
		reservations.POST("/:id/complete", h.Reservation.Complete)
	}
}
