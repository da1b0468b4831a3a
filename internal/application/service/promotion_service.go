package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/pkg/apperror"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// PromotionService handles promotion rule management
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// PromotionInput represents the create/update promotion input. Monetary
// amounts are decimal currency units.
type PromotionInput struct {
	Name        string
	Type        enum.DiscountType
	Value       float64
	MinPurchase float64
	Quantity    int
	StartDate   time.Time
	EndDate     time.Time
	ProductIDs  []uuid.UUID
	CustomerIDs []uuid.UUID
}

func (in *PromotionInput) validate() error {
	if !in.Type.Valid() {
		return apperror.NewBadRequestError("Invalid discount type")
	}
	if in.Type != enum.DiscountBuyGet && in.Value <= 0 {
		return apperror.NewBadRequestError("Discount value must be greater than zero")
	}
	if in.Type == enum.DiscountPercent && in.Value > 100 {
		return apperror.NewBadRequestError("Percent discount cannot exceed 100")
	}
	if entity.DateOnly(in.EndDate).Before(entity.DateOnly(in.StartDate)) {
		return apperror.NewBadRequestError("End date must not be before start date")
	}
	return nil
}

func (in *PromotionInput) apply(p *entity.Promotion) {
	p.Name = in.Name
	p.Type = in.Type
	if in.Type == enum.DiscountPercent {
		p.Value = int64(in.Value)
	} else {
		p.Value = int64(in.Value * 100)
	}
	p.MinPurchase = int64(in.MinPurchase * 100)
	p.Quantity = in.Quantity
	p.StartDate = entity.DateOnly(in.StartDate)
	p.EndDate = entity.DateOnly(in.EndDate)
	p.ProductIDs = in.ProductIDs
	p.CustomerIDs = in.CustomerIDs
}

// CreatePromotion creates a new promotion rule
func (s *PromotionService) CreatePromotion(ctx context.Context, input *PromotionInput) (*entity.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotion := &entity.Promotion{}
	input.apply(promotion)

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	return promotion, nil
}

// ListPromotions lists promotions with pagination
func (s *PromotionService) ListPromotions(ctx context.Context, params *repository.PromotionFilterParams) (*pagination.PaginatedResult[entity.Promotion], error) {
	params.Pagination.Validate()
	promotions, total, err := s.promotionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(promotions, pag), nil
}

// UpdatePromotion replaces a promotion's terms. Usage history is preserved.
func (s *PromotionService) UpdatePromotion(ctx context.Context, id uuid.UUID, input *PromotionInput) (*entity.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}

	input.apply(promotion)
	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion soft-deletes a promotion. Invoices that applied it keep
// their snapshots.
func (s *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return apperror.NewNotFoundError("Promotion")
	}
	return s.promotionRepo.Delete(ctx, id)
}
