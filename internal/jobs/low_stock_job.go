package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// LowStockJobName is the name of the daily low stock report job
const LowStockJobName = "low_stock_report"

// LowStockJobSchedule runs the report at 08:00 every day
const LowStockJobSchedule = "0 0 8 * * *"

// MaterialSource lists materials at or below their minimum quantity
type MaterialSource interface {
	ListLowStock(ctx context.Context) ([]domain.Material, error)
}

// LowStockJob logs materials that need restocking so operators see them in
// the daily log stream
type LowStockJob struct {
	source  MaterialSource
	logger  *zap.Logger
	timeout time.Duration
}

func NewLowStockJob(source MaterialSource, logger *zap.Logger, timeout time.Duration) *LowStockJob {
	return &LowStockJob{
		source:  source,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one low stock check
func (j *LowStockJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	materials, err := j.source.ListLowStock(ctx)
	if err != nil {
		j.logger.Error("low stock check failed", zap.Error(err))
		return
	}

	if len(materials) == 0 {
		j.logger.Info("low stock check completed, all materials above minimum")
		return
	}

	for i := range materials {
		m := &materials[i]
		j.logger.Warn("material below minimum quantity",
			zap.String("material_id", m.ID.String()),
			zap.String("name", m.Name),
			zap.String("sku", m.SKU),
			zap.Float64("quantity", m.Quantity),
			zap.Float64("min_quantity", m.MinQuantity),
		)
	}

	j.logger.Info("low stock check completed",
		zap.Int("materials_low", len(materials)))
}

// RegisterLowStockJob registers the daily low stock report with the scheduler
func RegisterLowStockJob(scheduler *Scheduler, source MaterialSource, logger *zap.Logger, timeout time.Duration) error {
	job := NewLowStockJob(source, logger, timeout)
	return scheduler.AddJob(LowStockJobName, LowStockJobSchedule, job.Run)
}
