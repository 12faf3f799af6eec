package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// WarehouseExportJobName is the name of the accounting export job
const WarehouseExportJobName = "warehouse_export"

// exportLookback bounds how far back each run looks for paid invoices.
// Two days covers runs missed over a restart without re-exporting history;
// the warehouse upsert makes repeats harmless.
const exportLookback = 48 * time.Hour

// InvoiceSource lists paid invoices for export
type InvoiceSource interface {
	ListPaidSince(ctx context.Context, since time.Time) ([]domain.Invoice, error)
}

// InvoiceExporter pushes invoices into the accounting warehouse
type InvoiceExporter interface {
	ExportInvoices(ctx context.Context, invoices []domain.Invoice) (int, error)
	IsEnabled() bool
}

// WarehouseExportJob pushes recently paid invoices into the accounting
// warehouse on a schedule
type WarehouseExportJob struct {
	source   InvoiceSource
	exporter InvoiceExporter
	logger   *zap.Logger
	timeout  time.Duration
}

func NewWarehouseExportJob(source InvoiceSource, exporter InvoiceExporter, logger *zap.Logger, timeout time.Duration) *WarehouseExportJob {
	return &WarehouseExportJob{
		source:   source,
		exporter: exporter,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes one export pass. Failures are logged, never fatal.
func (j *WarehouseExportJob) Run() {
	if j.exporter == nil || !j.exporter.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	since := start.Add(-exportLookback)

	invoices, err := j.source.ListPaidSince(ctx, since)
	if err != nil {
		j.logger.Error("warehouse export failed to list paid invoices", zap.Error(err))
		return
	}
	if len(invoices) == 0 {
		j.logger.Debug("warehouse export found no paid invoices")
		return
	}

	exported, err := j.exporter.ExportInvoices(ctx, invoices)
	if err != nil {
		j.logger.Error("warehouse export failed",
			zap.Error(err),
			zap.Int("exported", exported),
			zap.Int("total", len(invoices)),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("warehouse export job completed",
		zap.Int("exported", exported),
		zap.Duration("duration", time.Since(start)))
}

// RegisterWarehouseExportJob registers the export job with the scheduler.
// Does nothing when the exporter is disabled.
func RegisterWarehouseExportJob(scheduler *Scheduler, source InvoiceSource, exporter InvoiceExporter, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	if exporter == nil || !exporter.IsEnabled() {
		logger.Info("warehouse export job not registered, exporter disabled")
		return nil
	}

	job := NewWarehouseExportJob(source, exporter, logger, timeout)
	return scheduler.AddJob(WarehouseExportJobName, cronExpr, job.Run)
}
