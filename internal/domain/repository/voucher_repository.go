package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// VoucherRepository defines the interface for voucher data operations
type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	// GetByCode looks a voucher up by its normalized code (case-insensitive)
	GetByCode(ctx context.Context, code string) (*entity.Voucher, error)
	Update(ctx context.Context, voucher *entity.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *VoucherFilterParams) ([]entity.Voucher, int64, error)

	// IncrementUsed bumps the usage counter (checkout follow-up, best-effort)
	IncrementUsed(ctx context.Context, id uuid.UUID) error
}

// VoucherFilterParams contains filtering parameters for voucher queries
type VoucherFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}
