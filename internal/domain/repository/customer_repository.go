package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// DebtMutation is computed by the debt ledger against a freshly-read customer
// row and applied atomically with the history append.
type DebtMutation struct {
	Entry            *entity.DebtEntry
	NewAmount        int64
	AddInvoiceIDs    []uuid.UUID
	RemoveInvoiceIDs []uuid.UUID
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetWithDebtHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)

	// MutateDebt locks the customer row, re-reads the current debt state,
	// lets compute derive the mutation from it, then applies balance, history
	// append and outstanding-invoice changes in one transaction. compute may
	// return an error to veto the mutation (e.g. overpayment), in which case
	// nothing is written.
	MutateDebt(ctx context.Context, customerID uuid.UUID, compute func(current *entity.Customer) (*DebtMutation, error)) (*entity.Customer, error)

	// RecordPurchase updates cumulative purchase statistics. Called exactly
	// once per invoice from checkout; debt repayment flows must not call it.
	RecordPurchase(ctx context.Context, customerID uuid.UUID, amount int64, at time.Time) error
}

// CustomerFilterParams contains filtering parameters for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	WithDebt   bool // only customers with a non-zero balance
}
