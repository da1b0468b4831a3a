package service

import (
	"context"
	"time"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// DashboardStats represents dashboard statistics. Monetary amounts are
// decimal currency units.
type DashboardStats struct {
	TodayRevenue         float64           `json:"today_revenue"`
	TodayInvoices        int64             `json:"today_invoices"`
	MonthRevenue         float64           `json:"month_revenue"`
	MonthInvoices        int64             `json:"month_invoices"`
	TotalOutstandingDebt float64           `json:"total_outstanding_debt"`
	LowStockCount        int64             `json:"low_stock_count"`
	TopDebtors           []entity.Customer `json:"top_debtors"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.analyticsRepo.RevenueSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	month, err := s.analyticsRepo.RevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	debt, err := s.analyticsRepo.TotalOutstandingDebt(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.analyticsRepo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	debtors, err := s.analyticsRepo.TopDebtors(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayRevenue:         float64(today.Revenue) / 100,
		TodayInvoices:        today.InvoiceCount,
		MonthRevenue:         float64(month.Revenue) / 100,
		MonthInvoices:        month.InvoiceCount,
		TotalOutstandingDebt: float64(debt) / 100,
		LowStockCount:        lowStock,
		TopDebtors:           debtors,
	}, nil
}
