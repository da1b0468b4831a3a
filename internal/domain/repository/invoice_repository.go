package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Invoices are immutable after creation except for the payment-method
// transition used by debt settlement.
type InvoiceRepository interface {
	// Create persists the invoice together with its items and snapshots
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error)
	GetByCode(ctx context.Context, code string) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)

	// UpdatePaymentMethod transitions the payment method on the given
	// invoices (debt -> cash/transfer during debt settlement)
	UpdatePaymentMethod(ctx context.Context, ids []uuid.UUID, method enum.PaymentMethod) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CustomerID    *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
