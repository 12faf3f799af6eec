package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
)

const defaultTopLimit = 10

// ReportRange bounds a report query. GroupBy is day, week, month, or year.
type ReportRange struct {
	Start   time.Time
	End     time.Time
	GroupBy string
	Limit   int
}

type ReportService struct {
	reportRepo *repository.ReportRepository
	logger     *zap.Logger
}

func NewReportService(reportRepo *repository.ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (rr ReportRange) limitOrDefault() int {
	if rr.Limit < 1 {
		return defaultTopLimit
	}
	return rr.Limit
}

// RevenueReport groups PAID invoice revenue over the range
func (s *ReportService) RevenueReport(ctx context.Context, rr ReportRange) ([]domain.RevenuePeriodDTO, error) {
	rows, err := s.reportRepo.RevenueByPeriod(ctx, rr.Start, rr.End, rr.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue report: %w", err)
	}
	return rows, nil
}

// TopProducts ranks products by PAID invoice revenue over the range
func (s *ReportService) TopProducts(ctx context.Context, rr ReportRange) ([]domain.TopItemDTO, error) {
	items, err := s.reportRepo.TopProducts(ctx, rr.Start, rr.End, rr.limitOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	return items, nil
}

// TopServices ranks catalog services by PAID invoice revenue over the range
func (s *ReportService) TopServices(ctx context.Context, rr ReportRange) ([]domain.TopItemDTO, error) {
	items, err := s.reportRepo.TopServices(ctx, rr.Start, rr.End, rr.limitOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to load top services: %w", err)
	}
	return items, nil
}

// TopCustomers ranks customers by PAID invoice spend over the range
func (s *ReportService) TopCustomers(ctx context.Context, rr ReportRange) ([]domain.TopCustomerDTO, error) {
	customers, err := s.reportRepo.TopCustomers(ctx, rr.Start, rr.End, rr.limitOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to load top customers: %w", err)
	}
	return customers, nil
}

// NewCustomers counts customer signups per day over the range
func (s *ReportService) NewCustomers(ctx context.Context, rr ReportRange) ([]domain.NewCustomersDTO, error) {
	rows, err := s.reportRepo.NewCustomersPerDay(ctx, rr.Start, rr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load new customers: %w", err)
	}
	return rows, nil
}

// ComprehensiveReport combines the individual reports with summary totals
func (s *ReportService) ComprehensiveReport(ctx context.Context, rr ReportRange) (*domain.ComprehensiveReportDTO, error) {
	revenue, err := s.RevenueReport(ctx, rr)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.TopProducts(ctx, rr)
	if err != nil {
		return nil, err
	}
	topServices, err := s.TopServices(ctx, rr)
	if err != nil {
		return nil, err
	}
	topCustomers, err := s.TopCustomers(ctx, rr)
	if err != nil {
		return nil, err
	}
	newCustomers, err := s.NewCustomers(ctx, rr)
	if err != nil {
		return nil, err
	}

	totalRevenue, totalInvoices, err := s.reportRepo.PaidInvoiceTotals(ctx, rr.Start, rr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice totals: %w", err)
	}
	totalNewCustomers, err := s.reportRepo.CountCustomersBetween(ctx, rr.Start, rr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count new customers: %w", err)
	}

	summary := domain.ReportSummaryDTO{
		TotalRevenue:      totalRevenue,
		TotalInvoices:     totalInvoices,
		TotalNewCustomers: totalNewCustomers,
	}
	if totalInvoices > 0 {
		summary.AverageInvoiceValue = totalRevenue / float64(totalInvoices)
	}

	return &domain.ComprehensiveReportDTO{
		Revenue:      revenue,
		TopProducts:  topProducts,
		TopServices:  topServices,
		TopCustomers: topCustomers,
		NewCustomers: newCustomers,
		Summary:      summary,
	}, nil
}
