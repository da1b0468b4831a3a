package repository

import (
	"context"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
)

// ShopRepository manages the singleton shop profile and its invoice counter
type ShopRepository interface {
	// Get returns the shop profile, creating the singleton row if missing
	Get(ctx context.Context) (*entity.ShopProfile, error)
	Update(ctx context.Context, profile *entity.ShopProfile) error

	// NextInvoiceNumber atomically increments and returns the invoice
	// counter. Allocation is a single UPDATE ... RETURNING so concurrent
	// checkouts can never be handed the same number.
	NextInvoiceNumber(ctx context.Context) (int64, error)

	// PeekInvoiceNumber returns the number the next allocation would yield
	// without reserving it. Used for the checkout preview/QR display.
	PeekInvoiceNumber(ctx context.Context) (int64, error)
}
