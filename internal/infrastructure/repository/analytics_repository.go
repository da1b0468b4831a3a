package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) RevenueSince(ctx context.Context, since time.Time) (*domainRepo.RevenueStats, error) {
	var stats domainRepo.RevenueStats
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(grand_total), 0) AS revenue, COUNT(*) AS invoice_count").
		Where("issued_at >= ?", since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *analyticsRepository) TotalOutstandingDebt(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Select("COALESCE(SUM(debt_amount), 0)").
		Where("debt_amount > 0").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) TopDebtors(ctx context.Context, limit int) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("debt_amount > 0").
		Order("debt_amount DESC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (r *analyticsRepository) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("active = ? AND quantity <= quantity_alert", true).
		Count(&count).Error
	return count, err
}
