// Package main is the entry point for the dukkan API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"dukkan/internal/domain/auth"
	"dukkan/internal/domain/customer"
	"dukkan/internal/domain/inventory"
	"dukkan/internal/domain/receivables"
	"dukkan/internal/domain/repairs"
	"dukkan/internal/domain/reports"
	"dukkan/internal/domain/sales"
	"dukkan/internal/domain/till"
	v1 "dukkan/internal/infrastructure/http/v1"
	"dukkan/internal/infrastructure/storage/postgres"
	"dukkan/internal/infrastructure/storage/postgres/catalog_repo"
	"dukkan/internal/infrastructure/storage/postgres/document_repo"
	"dukkan/internal/infrastructure/storage/postgres/register_repo"
	"dukkan/pkg/logger"
	"dukkan/pkg/numerator"
)

// Config is populated from DUKKAN_* environment variables.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	AdminUser     string        `envconfig:"ADMIN_USER" default:"admin"`
	AdminPassHash string        `envconfig:"ADMIN_PASS_HASH"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	PoolStatsEvery  time.Duration `envconfig:"POOL_STATS_EVERY" default:"5m"`
}

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("dukkan", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.AdminPassHash == "" && cfg.AdminPassword == "" {
		fmt.Fprintln(os.Stderr, "config: DUKKAN_ADMIN_PASS_HASH or DUKKAN_ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	ctx = logger.WithLogger(ctx, log)
	log.Info("starting dukkan server")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditor, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit recorder", "error", err)
	}

	tillRepo := register_repo.NewTillRepo(txManager)
	movementRepo := register_repo.NewMovementRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	repairRepo := document_repo.NewRepairRepo(txManager)
	receivableRepo := document_repo.NewReceivableRepo(txManager)

	numeratorSvc := numerator.New(pool)

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.TokenTTL = cfg.TokenTTL
	jwtService := auth.NewJWTService(jwtConfig)

	authSvc := auth.NewService(auth.ServiceConfig{
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
		AdminPassword: cfg.AdminPassword,
	}, jwtService)

	tillSvc := till.NewService(tillRepo, txManager, auditor, authSvc.VerifyAdminPassword)
	inventorySvc := inventory.NewService(productRepo, movementRepo, txManager, numeratorSvc)
	customerSvc := customer.NewService(customerRepo)
	salesSvc := sales.NewService(saleRepo, inventorySvc, customerRepo, tillSvc, txManager, auditor)
	repairsSvc := repairs.NewService(repairRepo, inventorySvc, customerRepo, txManager, auditor)
	receivableSvc := receivables.NewService(receivableRepo)
	reportsSvc := reports.NewService(tillRepo, productRepo, saleRepo, txManager)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:            log,
		Pool:              pool,
		JWTValidator:      jwtService,
		AuthService:       authSvc,
		TillService:       tillSvc,
		InventoryService:  inventorySvc,
		CustomerService:   customerSvc,
		SalesService:      salesSvc,
		RepairsService:    repairsSvc,
		ReceivableService: receivableSvc,
		ReportsService:    reportsSvc,
		ResetStore:        postgres.NewResetStore(txManager),
		Auditor:           auditor,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.PoolStatsEvery)
		defer ticker.Stop()
		for range ticker.C {
			postgres.LogPoolStats(ctx, pool.Pool)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
