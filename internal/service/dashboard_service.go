package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
)

// DashboardService aggregates the numbers shown on the landing screen
type DashboardService struct {
	reportRepo *repository.ReportRepository
	leadRepo   *repository.LeadRepository
	logger     *zap.Logger
}

func NewDashboardService(
	reportRepo *repository.ReportRepository,
	leadRepo *repository.LeadRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		reportRepo: reportRepo,
		leadRepo:   leadRepo,
		logger:     logger,
	}
}

// GetStats builds the dashboard: overview counters, lead counts by status,
// and PAID revenue per month over the last six months.
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStatsDTO, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	sixMonthsAgo := startOfMonth.AddDate(0, -5, 0)

	overview := domain.DashboardOverviewDTO{}

	var err error
	if overview.TotalLeads, err = s.reportRepo.CountLeads(ctx); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	if overview.TotalCustomers, err = s.reportRepo.CountCustomers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if overview.ProductsInProgress, err = s.reportRepo.CountProductsByStatus(ctx, domain.ProductStatusInProgress); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if overview.MonthlyRevenue, err = s.reportRepo.PaidRevenueSince(ctx, startOfMonth); err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	if overview.YearlyRevenue, err = s.reportRepo.PaidRevenueSince(ctx, startOfYear); err != nil {
		return nil, fmt.Errorf("failed to sum yearly revenue: %w", err)
	}
	if overview.PendingInvoices, err = s.reportRepo.CountInvoicesByStatus(ctx, domain.InvoiceStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending invoices: %w", err)
	}
	activeStatuses := []domain.WorkflowStatus{domain.WorkflowStatusPending, domain.WorkflowStatusInProgress}
	if overview.ActiveWorkflows, err = s.reportRepo.CountWorkflowsByStatuses(ctx, activeStatuses); err != nil {
		return nil, fmt.Errorf("failed to count active workflows: %w", err)
	}
	if overview.RecentLeads, err = s.reportRepo.CountLeadsSince(ctx, weekAgo); err != nil {
		return nil, fmt.Errorf("failed to count recent leads: %w", err)
	}

	leadsByStatus, err := s.leadRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group leads by status: %w", err)
	}

	revenueByMonth, err := s.reportRepo.RevenueByMonth(ctx, sixMonthsAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue by month: %w", err)
	}

	return &domain.DashboardStatsDTO{
		Overview:       overview,
		LeadsByStatus:  leadsByStatus,
		RevenueByMonth: revenueByMonth,
	}, nil
}
