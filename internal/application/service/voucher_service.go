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

// VoucherService handles voucher code management
type VoucherService struct {
	voucherRepo repository.VoucherRepository
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repository.VoucherRepository) *VoucherService {
	return &VoucherService{voucherRepo: voucherRepo}
}

// VoucherInput represents the create/update voucher input. Monetary amounts
// are decimal currency units.
type VoucherInput struct {
	Code        string
	Name        string
	Type        enum.DiscountType
	Value       float64
	MaxDiscount float64
	MinPurchase float64
	Quantity    int
	StartDate   time.Time
	EndDate     time.Time
	ProductIDs  []uuid.UUID
	CustomerIDs []uuid.UUID
}

func (in *VoucherInput) validate() error {
	if entity.NormalizeVoucherCode(in.Code) == "" {
		return apperror.NewBadRequestError("Voucher code is required")
	}
	if !in.Type.ValidForVoucher() {
		return apperror.NewBadRequestError("Voucher type must be percent or fixed")
	}
	if in.Value <= 0 {
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

func (in *VoucherInput) apply(v *entity.Voucher) {
	v.Code = entity.NormalizeVoucherCode(in.Code)
	v.Name = in.Name
	v.Type = in.Type
	if in.Type == enum.DiscountPercent {
		v.Value = int64(in.Value)
	} else {
		v.Value = int64(in.Value * 100)
	}
	v.MaxDiscount = int64(in.MaxDiscount * 100)
	v.MinPurchase = int64(in.MinPurchase * 100)
	v.Quantity = in.Quantity
	v.StartDate = entity.DateOnly(in.StartDate)
	v.EndDate = entity.DateOnly(in.EndDate)
	v.ProductIDs = in.ProductIDs
	v.CustomerIDs = in.CustomerIDs
}

// CreateVoucher creates a new voucher. The code must be unique after
// normalization.
func (s *VoucherService) CreateVoucher(ctx context.Context, input *VoucherInput) (*entity.Voucher, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if existing, err := s.voucherRepo.GetByCode(ctx, input.Code); err == nil && existing != nil {
		return nil, apperror.NewConflictError("Voucher code already exists")
	}

	voucher := &entity.Voucher{}
	input.apply(voucher)

	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// GetVoucher retrieves a voucher by ID
func (s *VoucherService) GetVoucher(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}
	return voucher, nil
}

// ListVouchers lists vouchers with pagination
func (s *VoucherService) ListVouchers(ctx context.Context, params *repository.VoucherFilterParams) (*pagination.PaginatedResult[entity.Voucher], error) {
	params.Pagination.Validate()
	vouchers, total, err := s.voucherRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(vouchers, pag), nil
}

// UpdateVoucher replaces a voucher's terms. Usage history is preserved.
func (s *VoucherService) UpdateVoucher(ctx context.Context, id uuid.UUID, input *VoucherInput) (*entity.Voucher, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}

	newCode := entity.NormalizeVoucherCode(input.Code)
	if newCode != voucher.Code {
		if existing, err := s.voucherRepo.GetByCode(ctx, newCode); err == nil && existing != nil {
			return nil, apperror.NewConflictError("Voucher code already exists")
		}
	}

	input.apply(voucher)
	if err := s.voucherRepo.Update(ctx, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// DeleteVoucher soft-deletes a voucher. Invoices that applied it keep their
// snapshots.
func (s *VoucherService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if voucher == nil {
		return apperror.NewNotFoundError("Voucher")
	}
	return s.voucherRepo.Delete(ctx, id)
}
