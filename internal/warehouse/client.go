// Package warehouse pushes paid invoices into the accounting MS SQL Server
// warehouse. The connection is optional; when disabled or unconfigured the
// client is nil and the export job becomes a no-op.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second

	exportTable = "dbo.atelier_paid_invoices"
)

// Client writes to the MS SQL Server accounting warehouse
type Client struct {
	db           *sql.DB
	config       *config.WarehouseConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// HealthStatus reports the state of the warehouse connection
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// NewClient connects to the warehouse with retry and backoff. Returns nil
// when the warehouse is disabled or credentials are missing; callers treat a
// nil client as "export off".
func NewClient(cfg *config.WarehouseConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("warehouse export disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("warehouse enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("attempting warehouse connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err != nil {
			logger.Warn("failed to open warehouse connection", zap.Error(err), zap.Int("attempt", attempt))
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.Warn("warehouse ping failed", zap.Error(err), zap.Int("attempt", attempt))
			_ = db.Close()
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		logger.Info("warehouse connection established", zap.Int("attempts_taken", attempt))

		return &Client{
			db:           db,
			config:       cfg,
			logger:       logger,
			queryTimeout: cfg.QueryTimeoutDuration(),
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString expects URL in format host:port/database or host:port
func buildConnectionString(cfg *config.WarehouseConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433"
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close shuts down the warehouse connection pool
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("closing warehouse connection")
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close warehouse connection: %w", err)
	}
	return nil
}

// IsEnabled reports whether the client holds a live connection
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// HealthCheck pings the warehouse and reports pool statistics
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{Status: "disabled"}
	}

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("warehouse health check failed", zap.Error(err), zap.Duration("latency", latency))
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// ExportInvoices upserts paid invoices into the accounting table, keyed by
// invoice id. Returns how many rows were written.
func (c *Client) ExportInvoices(ctx context.Context, invoices []domain.Invoice) (int, error) {
	if c == nil || c.db == nil {
		return 0, fmt.Errorf("warehouse client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	query := fmt.Sprintf(`
		MERGE %s AS target
		USING (SELECT @p1 AS invoice_id) AS source
		ON target.invoice_id = source.invoice_id
		WHEN MATCHED THEN
			UPDATE SET invoice_no = @p2, customer_id = @p3, total_amount = @p4,
			           invoiced_at = @p5, exported_at = @p6
		WHEN NOT MATCHED THEN
			INSERT (invoice_id, invoice_no, customer_id, total_amount, invoiced_at, exported_at)
			VALUES (@p1, @p2, @p3, @p4, @p5, @p6);`, exportTable)

	start := time.Now()
	exported := 0
	now := time.Now().UTC()

	for i := range invoices {
		inv := &invoices[i]
		_, err := c.db.ExecContext(ctx, query,
			inv.ID.String(),
			inv.InvoiceNo,
			inv.CustomerID.String(),
			inv.TotalAmount,
			inv.CreatedAt.UTC(),
			now,
		)
		if err != nil {
			c.logger.Error("warehouse invoice export failed",
				zap.Error(err),
				zap.String("invoice_id", inv.ID.String()),
				zap.Int("exported_so_far", exported),
			)
			return exported, fmt.Errorf("failed to export invoice %s: %w", inv.InvoiceNo, err)
		}
		exported++
	}

	c.logger.Info("warehouse invoice export completed",
		zap.Int("exported", exported),
		zap.Duration("duration", time.Since(start)),
	)
	return exported, nil
}
