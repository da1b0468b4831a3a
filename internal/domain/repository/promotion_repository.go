package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// PromotionRepository defines the interface for promotion data operations
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PromotionFilterParams) ([]entity.Promotion, int64, error)

	// ListCandidates returns promotions whose date window covers today.
	// Eligibility proper is evaluated in the pricing engine.
	ListCandidates(ctx context.Context, today time.Time) ([]entity.Promotion, error)

	// IncrementUsed bumps the usage counter (checkout follow-up, best-effort)
	IncrementUsed(ctx context.Context, id uuid.UUID) error
}

// PromotionFilterParams contains filtering parameters for promotion queries
type PromotionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// RedemptionRepository maintains the (customer, rule) redemption index
// backing the one-redemption-per-customer rule for promotions and vouchers
type RedemptionRepository interface {
	// RedeemedRuleIDs returns the set of promotion/voucher ids the customer
	// has already redeemed
	RedeemedRuleIDs(ctx context.Context, customerID uuid.UUID) (map[uuid.UUID]bool, error)

	// Record adds redemption entries for an invoice (checkout follow-up)
	Record(ctx context.Context, customerID, invoiceID uuid.UUID, ruleIDs []uuid.UUID) error
}
