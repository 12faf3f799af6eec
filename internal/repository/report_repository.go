package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// ReportRepository runs the aggregate queries behind the dashboard and
// report endpoints. The period groupings use Postgres TO_CHAR.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountLeads(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountLeadsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountCustomersBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountProductsByStatus(ctx context.Context, status domain.ProductStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountWorkflowsByStatuses(ctx context.Context, statuses []domain.WorkflowStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// PaidRevenueSince sums PAID invoice totals created at or after since
func (r *ReportRepository) PaidRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ? AND created_at >= ?", domain.InvoiceStatusPaid, since).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// RevenueByMonth groups PAID invoice revenue per calendar month
func (r *ReportRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]domain.MonthlyRevenueDTO, error) {
	type row struct {
		Month   string
		Revenue float64
	}
	var rows []row
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM invoices
		WHERE status = ? AND created_at >= ?
		GROUP BY 1
		ORDER BY 1`,
		domain.InvoiceStatusPaid, since,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.MonthlyRevenueDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, domain.MonthlyRevenueDTO{Month: r.Month, Revenue: r.Revenue})
	}
	return result, nil
}

var periodFormats = map[string]string{
	"day":   "YYYY-MM-DD",
	"week":  `YYYY-"W"IW`,
	"month": "YYYY-MM",
	"year":  "YYYY",
}

// RevenueByPeriod groups PAID invoice revenue by day, week, month, or year
func (r *ReportRepository) RevenueByPeriod(ctx context.Context, start, end time.Time, groupBy string) ([]domain.RevenuePeriodDTO, error) {
	format, ok := periodFormats[groupBy]
	if !ok {
		format = periodFormats["day"]
	}

	type row struct {
		Period       string
		Revenue      float64
		InvoiceCount int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(created_at, ?) AS period,
		       COALESCE(SUM(total_amount), 0) AS revenue,
		       COUNT(*) AS invoice_count
		FROM invoices
		WHERE status = ? AND created_at BETWEEN ? AND ?
		GROUP BY 1
		ORDER BY 1`,
		format, domain.InvoiceStatusPaid, start, end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.RevenuePeriodDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, domain.RevenuePeriodDTO{
			Period:       r.Period,
			Revenue:      r.Revenue,
			InvoiceCount: r.InvoiceCount,
		})
	}
	return result, nil
}

// TopProducts ranks products by PAID invoice revenue
func (r *ReportRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domain.TopItemDTO, error) {
	var items []domain.TopItemDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.name,
		       COALESCE(SUM(ii.price * ii.quantity), 0) AS revenue,
		       COALESCE(SUM(ii.quantity), 0) AS quantity
		FROM products p
		JOIN invoice_items ii ON ii.product_id = p.id
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.status = ? AND i.created_at BETWEEN ? AND ?
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT ?`,
		domain.InvoiceStatusPaid, start, end, limit,
	).Scan(&items).Error
	return items, err
}

// TopServices ranks catalog services by PAID invoice revenue
func (r *ReportRepository) TopServices(ctx context.Context, start, end time.Time, limit int) ([]domain.TopItemDTO, error) {
	var items []domain.TopItemDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id, s.name,
		       COALESCE(SUM(ii.price * ii.quantity), 0) AS revenue,
		       COALESCE(SUM(ii.quantity), 0) AS quantity
		FROM services s
		JOIN invoice_items ii ON ii.service_id = s.id
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.status = ? AND i.created_at BETWEEN ? AND ?
		GROUP BY s.id, s.name
		ORDER BY revenue DESC
		LIMIT ?`,
		domain.InvoiceStatusPaid, start, end, limit,
	).Scan(&items).Error
	return items, err
}

// TopCustomers ranks customers by PAID invoice spend
func (r *ReportRepository) TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]domain.TopCustomerDTO, error) {
	var customers []domain.TopCustomerDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id, c.name, c.phone,
		       COUNT(DISTINCT i.id) AS invoice_count,
		       COALESCE(SUM(i.total_amount), 0) AS total_spent
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id
		WHERE i.status = ? AND i.created_at BETWEEN ? AND ?
		GROUP BY c.id, c.name, c.phone
		ORDER BY total_spent DESC
		LIMIT ?`,
		domain.InvoiceStatusPaid, start, end, limit,
	).Scan(&customers).Error
	return customers, err
}

// NewCustomersPerDay counts customer signups per day
func (r *ReportRepository) NewCustomersPerDay(ctx context.Context, start, end time.Time) ([]domain.NewCustomersDTO, error) {
	type row struct {
		Date  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS date,
		       COUNT(*) AS count
		FROM customers
		WHERE created_at BETWEEN ? AND ?
		GROUP BY 1
		ORDER BY 1`,
		start, end,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.NewCustomersDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, domain.NewCustomersDTO{Date: r.Date, Count: r.Count})
	}
	return result, nil
}

// PaidInvoiceTotals returns the PAID revenue sum and invoice count in a range
func (r *ReportRepository) PaidInvoiceTotals(ctx context.Context, start, end time.Time) (float64, int64, error) {
	type row struct {
		Revenue float64
		Count   int64
	}
	var result row
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", domain.InvoiceStatusPaid, start, end).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS count").
		Scan(&result).Error
	return result.Revenue, result.Count, err
}
