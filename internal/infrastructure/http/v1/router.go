// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/audit"
	"dukkan/internal/domain/auth"
	"dukkan/internal/domain/customer"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/domain/receivables"
	"dukkan/internal/domain/repairs"
	"dukkan/internal/domain/reports"
	"dukkan/internal/domain/sales"
	"dukkan/internal/domain/till"
	"dukkan/internal/infrastructure/http/v1/handlers"
	"dukkan/internal/infrastructure/http/v1/middleware"
	"dukkan/internal/infrastructure/storage/postgres"
	"dukkan/pkg/logger"
)

// RouterConfig holds everything the HTTP layer depends on.
type RouterConfig struct {
	Logger *logger.Logger

	// Pool is used by readiness checks only; all data access goes
	// through the services below.
	Pool *postgres.Pool

	JWTValidator middleware.JWTValidator

	AuthService       *auth.Service
	TillService       *till.Service
	InventoryService  *inventory.Service
	CustomerService   *customer.Service
	SalesService      *sales.Service
	RepairsService    *repairs.Service
	ReceivableService *receivables.Service
	ReportsService    *reports.Service

	ResetStore *postgres.ResetStore
	Auditor    audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/session", authHandler.Session)

		registers := handlers.NewCashRegisterHandler(cfg.TillService, cfg.ReportsService)
		cashRegister := protected.Group("/cash-register")
		{
			cashRegister.GET("", registers.List)
			cashRegister.POST("", registers.Open)
			cashRegister.POST("/clear", registers.Clear)
			cashRegister.GET("/reports", registers.Report)
			cashRegister.GET("/:id", registers.Get)
			cashRegister.PATCH("/:id", registers.Close)
			cashRegister.DELETE("/:id", registers.Delete)
		}

		entries := handlers.NewCashTransactionsHandler(cfg.TillService)
		protected.GET("/cash-transactions", entries.List)
		protected.POST("/cash-transactions", entries.Create)

		products := handlers.NewProductsHandler(cfg.InventoryService)
		productGroup := protected.Group("/products")
		{
			productGroup.GET("", products.List)
			productGroup.POST("", products.Create)
			productGroup.GET("/:id", products.Get)
			productGroup.PUT("/:id", products.Update)
			productGroup.DELETE("/:id", products.Delete)
		}

		movements := handlers.NewStockMovementsHandler(cfg.InventoryService)
		protected.GET("/stock-movements", movements.List)
		protected.POST("/stock-movements", movements.Create)

		customers := handlers.NewCustomersHandler(cfg.CustomerService)
		customerGroup := protected.Group("/customers")
		{
			customerGroup.GET("", customers.List)
			customerGroup.POST("", customers.Create)
			customerGroup.GET("/:id", customers.Get)
			customerGroup.PUT("/:id", customers.Update)
			customerGroup.DELETE("/:id", customers.Delete)
		}

		transactions := handlers.NewTransactionsHandler(cfg.SalesService)
		transactionGroup := protected.Group("/transactions")
		{
			transactionGroup.GET("", transactions.List)
			transactionGroup.POST("", transactions.Create)
			transactionGroup.DELETE("", transactions.Delete)
		}

		services := handlers.NewServicesHandler(cfg.RepairsService)
		serviceGroup := protected.Group("/services")
		{
			serviceGroup.GET("", services.List)
			serviceGroup.POST("", services.Create)
			serviceGroup.GET("/:id", services.Get)
			serviceGroup.PUT("/:id", services.Update)
			serviceGroup.DELETE("/:id", services.Delete)
		}

		receivableHandler := handlers.NewReceivablesHandler(cfg.ReceivableService)
		receivableGroup := protected.Group("/receivables")
		{
			receivableGroup.GET("", receivableHandler.List)
			receivableGroup.POST("", receivableHandler.Create)
			receivableGroup.PUT("/:id", receivableHandler.Update)
			receivableGroup.DELETE("/:id", receivableHandler.Delete)
		}

		reportsHandler := handlers.NewReportsHandler(cfg.ReportsService)
		protected.GET("/reports/dashboard", reportsHandler.Dashboard)

		admin := handlers.NewAdminHandler(cfg.AuthService, cfg.ResetStore, cfg.Auditor)
		protected.POST("/admin/reset", admin.Reset)
	}

	return router
}
