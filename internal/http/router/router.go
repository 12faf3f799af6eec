package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/auth"
	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/database"
	"github.com/atelier-vn/shop-api/internal/http/handler"
	"github.com/atelier-vn/shop-api/internal/http/middleware"
	"github.com/atelier-vn/shop-api/internal/warehouse"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	warehouseClient  *warehouse.Client
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	leadHandler      *handler.LeadHandler
	customerHandler  *handler.CustomerHandler
	productHandler   *handler.ProductHandler
	serviceHandler   *handler.ServiceHandler
	invoiceHandler   *handler.InvoiceHandler
	orderHandler     *handler.OrderHandler
	workflowHandler  *handler.WorkflowHandler
	inventoryHandler *handler.InventoryHandler
	financeHandler   *handler.FinanceHandler
	dashboardHandler *handler.DashboardHandler
	reportHandler    *handler.ReportHandler
	uploadHandler    *handler.UploadHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouseClient *warehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	leadHandler *handler.LeadHandler,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	serviceHandler *handler.ServiceHandler,
	invoiceHandler *handler.InvoiceHandler,
	orderHandler *handler.OrderHandler,
	workflowHandler *handler.WorkflowHandler,
	inventoryHandler *handler.InventoryHandler,
	financeHandler *handler.FinanceHandler,
	dashboardHandler *handler.DashboardHandler,
	reportHandler *handler.ReportHandler,
	uploadHandler *handler.UploadHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		warehouseClient:  warehouseClient,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		leadHandler:      leadHandler,
		customerHandler:  customerHandler,
		productHandler:   productHandler,
		serviceHandler:   serviceHandler,
		invoiceHandler:   invoiceHandler,
		orderHandler:     orderHandler,
		workflowHandler:  workflowHandler,
		inventoryHandler: inventoryHandler,
		financeHandler:   financeHandler,
		dashboardHandler: dashboardHandler,
		reportHandler:    reportHandler,
		uploadHandler:    uploadHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Basic liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The warehouse is optional, a degraded export does not fail readiness
		if rt.warehouseClient.IsEnabled() {
			status := rt.warehouseClient.HealthCheck(r.Context())
			checks["warehouse"] = status
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": map[bool]string{true: "healthy", false: "unhealthy"}[allHealthy],
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/register", rt.authHandler.Register)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", rt.leadHandler.List)
				r.Post("/", rt.leadHandler.Create)
				r.Get("/{id}", rt.leadHandler.Get)
				r.Put("/{id}", rt.leadHandler.Update)
				r.Delete("/{id}", rt.leadHandler.Delete)
				r.Post("/{id}/activities", rt.leadHandler.AddActivity)
				r.Post("/{id}/convert", rt.leadHandler.Convert)
			})

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Get("/{id}", rt.customerHandler.Get)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
			})

			// Products (customer items in care)
			r.Route("/products", func(r chi.Router) {
				r.Get("/", rt.productHandler.List)
				r.Post("/", rt.productHandler.Create)
				r.Get("/{id}", rt.productHandler.Get)
				r.Put("/{id}", rt.productHandler.Update)
				r.Delete("/{id}", rt.productHandler.Delete)
			})

			// Service catalog
			r.Route("/services", func(r chi.Router) {
				r.Get("/", rt.serviceHandler.List)
				r.Post("/", rt.serviceHandler.Create)
				r.Get("/{id}", rt.serviceHandler.Get)
				r.Put("/{id}", rt.serviceHandler.Update)
				r.Delete("/{id}", rt.serviceHandler.Delete)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Get("/{id}", rt.invoiceHandler.Get)
				r.Put("/{id}", rt.invoiceHandler.Update)
				r.Delete("/{id}", rt.invoiceHandler.Delete)
				r.Post("/{id}/items", rt.invoiceHandler.AddItem)
				r.Put("/{id}/items/{itemId}", rt.invoiceHandler.UpdateItem)
				r.Delete("/{id}/items/{itemId}", rt.invoiceHandler.DeleteItem)
			})

			// Orders
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", rt.orderHandler.List)
				r.Post("/", rt.orderHandler.Create)
				r.Get("/{id}", rt.orderHandler.Get)
				r.Put("/{id}/status", rt.orderHandler.UpdateStatus)
				r.Delete("/{id}", rt.orderHandler.Delete)
			})

			// Workflows
			r.Route("/workflows", func(r chi.Router) {
				r.Get("/", rt.workflowHandler.List)
				r.Post("/", rt.workflowHandler.Create)
				r.Get("/{id}", rt.workflowHandler.Get)
				r.Put("/{id}", rt.workflowHandler.Update)
				r.Delete("/{id}", rt.workflowHandler.Delete)
				r.Put("/{id}/stages/{stageId}/status", rt.workflowHandler.UpdateStageStatus)
				r.Put("/{id}/stages/{stageId}/assign", rt.workflowHandler.AssignStage)
				r.Post("/{id}/stages/{stageId}/tasks", rt.workflowHandler.AddTask)
				r.Put("/{id}/stages/{stageId}/tasks/{taskId}", rt.workflowHandler.UpdateTaskCompletion)
				r.Delete("/{id}/stages/{stageId}/tasks/{taskId}", rt.workflowHandler.DeleteTask)
			})

			// Inventory materials
			r.Route("/materials", func(r chi.Router) {
				r.Get("/", rt.inventoryHandler.List)
				r.Post("/", rt.inventoryHandler.Create)
				r.Get("/low-stock", rt.inventoryHandler.LowStock)
				r.Get("/{id}", rt.inventoryHandler.Get)
				r.Put("/{id}", rt.inventoryHandler.Update)
				r.Delete("/{id}", rt.inventoryHandler.Delete)
			})

			// Finance transactions
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", rt.financeHandler.List)
				r.Post("/", rt.financeHandler.Create)
				r.Get("/{id}", rt.financeHandler.Get)
				r.Put("/{id}", rt.financeHandler.Update)
				r.Delete("/{id}", rt.financeHandler.Delete)
			})

			// Dashboard
			r.Get("/dashboard/stats", rt.dashboardHandler.Stats)

			// Reports (admin only)
			r.Route("/reports", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/revenue", rt.reportHandler.Revenue)
				r.Get("/top-products", rt.reportHandler.TopProducts)
				r.Get("/top-services", rt.reportHandler.TopServices)
				r.Get("/top-customers", rt.reportHandler.TopCustomers)
				r.Get("/new-customers", rt.reportHandler.NewCustomers)
				r.Get("/comprehensive", rt.reportHandler.Comprehensive)
			})

			// Uploads
			r.Post("/uploads", rt.uploadHandler.Upload)
			r.Get("/uploads", rt.uploadHandler.Download)
		})
	})

	return r
}
