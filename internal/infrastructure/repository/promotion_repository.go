package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
)

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) domainRepo.PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promotion entity.Promotion
	err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *promotionRepository) Update(ctx context.Context, promotion *entity.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Promotion{}, "id = ?", id).Error
}

func (r *promotionRepository) List(ctx context.Context, params *domainRepo.PromotionFilterParams) ([]entity.Promotion, int64, error) {
	var promotions []entity.Promotion
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Promotion{})
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&promotions).Error
	return promotions, total, err
}

// ListCandidates narrows by date window only; the pricing engine applies the
// remaining eligibility rules
func (r *promotionRepository) ListCandidates(ctx context.Context, today time.Time) ([]entity.Promotion, error) {
	var promotions []entity.Promotion
	day := entity.DateOnly(today)
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&promotions).Error
	return promotions, err
}

func (r *promotionRepository) IncrementUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Promotion{}).
		Where("id = ?", id).
		UpdateColumn("used", gorm.Expr("used + 1")).Error
}

type redemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *gorm.DB) domainRepo.RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) RedeemedRuleIDs(ctx context.Context, customerID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ruleIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.Redemption{}).
		Where("customer_id = ?", customerID).
		Pluck("rule_id", &ruleIDs).Error
	if err != nil {
		return nil, err
	}

	redeemed := make(map[uuid.UUID]bool, len(ruleIDs))
	for _, id := range ruleIDs {
		redeemed[id] = true
	}
	return redeemed, nil
}

// Record inserts redemption rows, ignoring duplicates so a replayed checkout
// follow-up stays idempotent
func (r *redemptionRepository) Record(ctx context.Context, customerID, invoiceID uuid.UUID, ruleIDs []uuid.UUID) error {
	if len(ruleIDs) == 0 {
		return nil
	}
	redemptions := make([]entity.Redemption, 0, len(ruleIDs))
	for _, ruleID := range ruleIDs {
		redemptions = append(redemptions, entity.Redemption{
			CustomerID: customerID,
			RuleID:     ruleID,
			InvoiceID:  invoiceID,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&redemptions).Error
}
