package service

import (
	"context"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/pkg/apperror"
	"github.com/minhphamdev/banle-api/pkg/bankqr"
)

// ShopService manages the singleton shop profile
type ShopService struct {
	shopRepo repository.ShopRepository
	qr       *bankqr.Resolver
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository, qr *bankqr.Resolver) *ShopService {
	return &ShopService{shopRepo: shopRepo, qr: qr}
}

// GetProfile returns the shop profile, creating it on first access
func (s *ShopService) GetProfile(ctx context.Context) (*entity.ShopProfile, error) {
	return s.shopRepo.Get(ctx)
}

// UpdateProfileInput represents the update shop profile input
type UpdateProfileInput struct {
	Name              *string
	Address           *string
	Phone             *string
	BankName          *string
	BankAccountNumber *string
	BankAccountHolder *string
}

// UpdateProfile updates the shop profile. A bank name must resolve to a known
// bank code so transfer QR codes keep working.
func (s *ShopService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.ShopProfile, error) {
	profile, err := s.shopRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Shop name is required")
		}
		profile.Name = *input.Name
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.BankName != nil {
		if *input.BankName != "" {
			if _, err := s.qr.ResolveCode(*input.BankName); err != nil {
				if rerr := s.qr.Refresh(ctx); rerr != nil {
					return nil, apperror.NewBadRequestError("Unknown bank name")
				}
				if _, err := s.qr.ResolveCode(*input.BankName); err != nil {
					return nil, apperror.NewBadRequestError("Unknown bank name")
				}
			}
		}
		profile.BankName = input.BankName
	}
	if input.BankAccountNumber != nil {
		profile.BankAccountNumber = input.BankAccountNumber
	}
	if input.BankAccountHolder != nil {
		profile.BankAccountHolder = input.BankAccountHolder
	}

	if err := s.shopRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
