package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/auth"
	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/database"
	"github.com/atelier-vn/shop-api/internal/http/handler"
	"github.com/atelier-vn/shop-api/internal/http/middleware"
	"github.com/atelier-vn/shop-api/internal/http/router"
	"github.com/atelier-vn/shop-api/internal/jobs"
	"github.com/atelier-vn/shop-api/internal/logger"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/storage"
	"github.com/atelier-vn/shop-api/internal/warehouse"
)

// @title Atelier Shop API
// @version 1.0
// @description Management API for a leather care atelier: leads, customers, invoicing, care workflows and inventory

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema migrations are applied with cmd/migrate; AutoMigrate keeps
	// development databases in sync without goose
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Warehouse connection is optional, the app runs without it
	warehouseClient, err := warehouse.NewClient(&cfg.Warehouse, log)
	if err != nil {
		log.Warn("Warehouse connection failed, continuing without it", zap.Error(err))
		warehouseClient = nil
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	tokens, err := auth.NewTokenManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	// Services
	authService := service.NewAuthService(userRepo, tokens, log)
	leadService := service.NewLeadService(leadRepo, customerRepo, log)
	customerService := service.NewCustomerService(customerRepo, log)
	productService := service.NewProductService(productRepo, customerRepo, log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, log)
	orderService := service.NewOrderService(orderRepo, customerRepo, log)
	workflowService := service.NewWorkflowService(workflowRepo, productRepo, &cfg.Workflow, log)
	inventoryService := service.NewInventoryService(materialRepo, log)
	financeService := service.NewFinanceService(transactionRepo, log)
	dashboardService := service.NewDashboardService(reportRepo, leadRepo, log)
	reportService := service.NewReportService(reportRepo, log)
	uploadService := service.NewUploadService(fileStorage, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	productHandler := handler.NewProductHandler(productService, log)
	serviceHandler := handler.NewServiceHandler(catalogService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	workflowHandler := handler.NewWorkflowHandler(workflowService, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, log)
	financeHandler := handler.NewFinanceHandler(financeService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	uploadHandler := handler.NewUploadHandler(uploadService, &cfg.Storage, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		warehouseClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		leadHandler,
		customerHandler,
		productHandler,
		serviceHandler,
		invoiceHandler,
		orderHandler,
		workflowHandler,
		inventoryHandler,
		financeHandler,
		dashboardHandler,
		reportHandler,
		uploadHandler,
	)

	// Background jobs
	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterWarehouseExportJob(
		scheduler,
		invoiceRepo,
		warehouseClient,
		log,
		cfg.Warehouse.ExportSchedule,
		cfg.Warehouse.QueryTimeoutDuration(),
	); err != nil {
		log.Error("Failed to register warehouse export job", zap.Error(err))
	}
	if err := jobs.RegisterLowStockJob(
		scheduler,
		materialRepo,
		log,
		cfg.Warehouse.QueryTimeoutDuration(),
	); err != nil {
		log.Error("Failed to register low stock job", zap.Error(err))
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := warehouseClient.Close(); err != nil {
			log.Warn("Error closing warehouse connection", zap.Error(err))
		}
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
