package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) domainRepo.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Get(ctx context.Context) (*entity.ShopProfile, error) {
	var profile entity.ShopProfile
	err := r.db.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = entity.ShopProfile{Name: "My Shop"}
		if err := r.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *shopRepository) Update(ctx context.Context, profile *entity.ShopProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// NextInvoiceNumber allocates the next counter value in a single statement so
// concurrent checkouts never share a number
func (r *shopRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	if _, err := r.Get(ctx); err != nil {
		return 0, err
	}

	var number int64
	err := r.db.WithContext(ctx).Raw(
		"UPDATE shop_profiles SET invoice_counter = invoice_counter + 1 RETURNING invoice_counter",
	).Scan(&number).Error
	if err != nil {
		return 0, err
	}
	return number, nil
}

// PeekInvoiceNumber returns what the next allocation would yield without
// reserving it
func (r *shopRepository) PeekInvoiceNumber(ctx context.Context) (int64, error) {
	profile, err := r.Get(ctx)
	if err != nil {
		return 0, err
	}
	return profile.InvoiceCounter + 1, nil
}
