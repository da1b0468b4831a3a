package repository

import (
	"context"
	"time"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
)

// RevenueStats aggregates invoice totals over a period
type RevenueStats struct {
	Revenue      int64 `json:"revenue"`
	InvoiceCount int64 `json:"invoice_count"`
}

// AnalyticsRepository provides read-side aggregates for the dashboard.
// It has no invariants of its own.
type AnalyticsRepository interface {
	RevenueSince(ctx context.Context, since time.Time) (*RevenueStats, error)
	TotalOutstandingDebt(ctx context.Context) (int64, error)
	TopDebtors(ctx context.Context, limit int) ([]entity.Customer, error)
	LowStockCount(ctx context.Context) (int64, error)
}
