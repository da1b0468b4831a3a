package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
)

// CartStore persists each cashier's cart set durably so in-progress sales
// survive process restarts
type CartStore interface {
	// Load returns the cashier's cart set, or nil when none is stored yet
	Load(ctx context.Context, userID uuid.UUID) (*entity.CartSet, error)
	Save(ctx context.Context, userID uuid.UUID, set *entity.CartSet) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
