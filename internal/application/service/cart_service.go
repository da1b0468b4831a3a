package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/pkg/apperror"
)

var (
	ErrCartNotFound      = apperror.NewNotFoundError("Cart")
	ErrCartLimitReached  = apperror.NewBadRequestError("Cart limit reached, settle or delete a cart first")
	ErrLastCart          = apperror.NewBadRequestError("Cannot delete the last remaining cart")
	ErrProductInactive   = apperror.NewBadRequestError("Product is not available for sale")
	ErrProductOutOfStock = apperror.NewBadRequestError("Product is out of stock")
)

// CartResult is a cart set together with warnings produced while repricing
// (clamped quantities, cleared voucher codes, dropped lines)
type CartResult struct {
	Set      *entity.CartSet
	Warnings []string
}

// CartService manages each cashier's set of in-progress sales. Every mutation
// reprices the affected cart against live stock, the promotion catalog and the
// applied voucher before persisting.
type CartService struct {
	carts       repository.CartStore
	products    repository.ProductRepository
	promotions  repository.PromotionRepository
	redemptions repository.RedemptionRepository
	vouchers    repository.VoucherRepository
	customers   repository.CustomerRepository
	maxCarts    int
}

// NewCartService creates a new cart service
func NewCartService(
	carts repository.CartStore,
	products repository.ProductRepository,
	promotions repository.PromotionRepository,
	redemptions repository.RedemptionRepository,
	vouchers repository.VoucherRepository,
	customers repository.CustomerRepository,
	maxCarts int,
) *CartService {
	return &CartService{
		carts:       carts,
		products:    products,
		promotions:  promotions,
		redemptions: redemptions,
		vouchers:    vouchers,
		customers:   customers,
		maxCarts:    maxCarts,
	}
}

// GetCarts returns the cashier's cart set, creating one on first use. The
// active cart is repriced so a stale stored cart never shows outdated stock or
// discounts.
func (s *CartService) GetCarts(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	warnings, err := s.reprice(ctx, set.Active())
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set, Warnings: warnings}, nil
}

// CreateCart adds a new empty cart and makes it active. At most maxCarts
// carts may exist per cashier.
func (s *CartService) CreateCart(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(set.Carts) >= s.maxCarts {
		return nil, ErrCartLimitReached
	}

	cart := entity.NewCart()
	set.Carts = append(set.Carts, cart)
	set.ActiveID = cart.ID

	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set}, nil
}

// SwitchCart makes another cart the active one
func (s *CartService) SwitchCart(ctx context.Context, userID uuid.UUID, cartID string) (*CartResult, error) {
	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := set.Find(cartID)
	if cart == nil {
		return nil, ErrCartNotFound
	}
	set.ActiveID = cartID

	warnings, err := s.reprice(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set, Warnings: warnings}, nil
}

// DeleteCart removes a cart. The last remaining cart cannot be deleted; if
// the active cart is deleted, another cart becomes active.
func (s *CartService) DeleteCart(ctx context.Context, userID uuid.UUID, cartID string) (*CartResult, error) {
	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(set.Carts) <= 1 {
		return nil, ErrLastCart
	}
	if set.Find(cartID) == nil {
		return nil, ErrCartNotFound
	}

	kept := set.Carts[:0]
	for i := range set.Carts {
		if set.Carts[i].ID != cartID {
			kept = append(kept, set.Carts[i])
		}
	}
	set.Carts = kept
	if set.ActiveID == cartID {
		set.ActiveID = set.Carts[0].ID
	}

	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set}, nil
}

// AddItem adds a product to the active cart, or bumps its quantity when the
// line already exists. Quantity is clamped to live stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return nil, ErrProductInactive
	}
	if product.Quantity <= 0 {
		return nil, ErrProductOutOfStock
	}

	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		if line := cart.FindLine(productID); line != nil {
			line.Quantity += quantity
			return nil
		}
		cart.Lines = append(cart.Lines, entity.CartLine{
			ProductID:  product.ID,
			Name:       product.Name,
			Unit:       product.Unit,
			UnitPrice:  product.SellingPrice,
			StockAtAdd: product.Quantity,
			Quantity:   quantity,
		})
		return nil
	})
}

// UpdateItemQuantity sets a line's quantity. Zero or negative removes the
// line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResult, error) {
	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		line := cart.FindLine(productID)
		if line == nil {
			return apperror.NewNotFoundError("Cart item")
		}
		if quantity <= 0 {
			cart.RemoveLine(productID)
			return nil
		}
		line.Quantity = quantity
		return nil
	})
}

// RemoveItem deletes a line from the active cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResult, error) {
	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		cart.RemoveLine(productID)
		return nil
	})
}

// ApplyVoucher applies a voucher code to the active cart. An ineligible code
// is rejected with the specific reason and never stored.
func (s *CartService) ApplyVoucher(ctx context.Context, userID uuid.UUID, code string) (*CartResult, error) {
	code = entity.NormalizeVoucherCode(code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Voucher code is required")
	}

	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := set.Active()
	cart.VoucherCode = code

	warnings, err := s.reprice(ctx, cart)
	if err != nil {
		return nil, err
	}
	// reprice clears codes it rejects; surface that as an error on explicit
	// application instead of a warning
	if cart.VoucherCode == "" {
		if verr := s.checkVoucherCode(ctx, cart, code); verr != nil {
			return nil, verr
		}
	}

	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set, Warnings: warnings}, nil
}

// RemoveVoucher clears the applied voucher from the active cart
func (s *CartService) RemoveVoucher(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		cart.VoucherCode = ""
		return nil
	})
}

// SetCustomer attaches a customer to the active cart, or detaches when
// customerID is nil. Eligibility is recomputed since customer scoping and
// redemption history depend on it.
func (s *CartService) SetCustomer(ctx context.Context, userID uuid.UUID, customerID *uuid.UUID) (*CartResult, error) {
	if customerID != nil {
		customer, err := s.customers.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}
	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		cart.CustomerID = customerID
		return nil
	})
}

// ClearCart empties the active cart but keeps the selected customer
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	return s.mutateActive(ctx, userID, func(cart *entity.Cart) error {
		cart.ClearForNextSale()
		return nil
	})
}

func (s *CartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*entity.CartSet, error) {
	set, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if set == nil || len(set.Carts) == 0 {
		set = entity.NewCartSet()
	}
	return set, nil
}

func (s *CartService) mutateActive(ctx context.Context, userID uuid.UUID, mutate func(cart *entity.Cart) error) (*CartResult, error) {
	set, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := set.Active()
	if err := mutate(cart); err != nil {
		return nil, err
	}

	warnings, err := s.reprice(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, set); err != nil {
		return nil, err
	}
	return &CartResult{Set: set, Warnings: warnings}, nil
}

// reprice brings a cart back in line with live state: quantities are clamped
// to current stock, lines for vanished products are dropped, and the discount
// breakdown is recomputed from scratch. Returns human-readable warnings for
// anything it had to change.
func (s *CartService) reprice(ctx context.Context, cart *entity.Cart) ([]string, error) {
	var warnings []string

	if len(cart.Lines) > 0 {
		ids := make([]uuid.UUID, 0, len(cart.Lines))
		for i := range cart.Lines {
			ids = append(ids, cart.Lines[i].ProductID)
		}
		products, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		kept := cart.Lines[:0]
		for i := range cart.Lines {
			line := cart.Lines[i]
			product, ok := byID[line.ProductID]
			if !ok || !product.Active {
				warnings = append(warnings, fmt.Sprintf("%s is no longer available and was removed", line.Name))
				continue
			}
			if product.Quantity <= 0 {
				warnings = append(warnings, fmt.Sprintf("%s is out of stock and was removed", line.Name))
				continue
			}
			if line.Quantity > product.Quantity {
				warnings = append(warnings, fmt.Sprintf("%s quantity reduced to %d (stock limit)", line.Name, product.Quantity))
				line.Quantity = product.Quantity
			}
			kept = append(kept, line)
		}
		cart.Lines = kept
	}

	in, err := s.eligibilityInput(ctx, cart)
	if err != nil {
		return nil, err
	}

	candidates, err := s.promotions.ListCandidates(ctx, in.Today)
	if err != nil {
		return nil, err
	}
	eligible := EligiblePromotions(in, candidates)
	cart.PromotionIDs = cart.PromotionIDs[:0]
	for i := range eligible {
		cart.PromotionIDs = append(cart.PromotionIDs, eligible[i].ID)
	}

	var voucher *entity.Voucher
	if cart.VoucherCode != "" {
		// A store failure must not masquerade as "voucher not found" and
		// silently strip the code
		voucher, err = s.vouchers.GetByCode(ctx, cart.VoucherCode)
		if err != nil {
			return nil, err
		}
		if verr := CheckVoucher(in, voucher); verr != nil {
			warnings = append(warnings, fmt.Sprintf("Voucher %s removed: %s", cart.VoucherCode, verr.Error()))
			cart.VoucherCode = ""
			voucher = nil
		}
	}

	result := ComputeDiscounts(in.Subtotal, eligible, voucher)
	cart.PromotionDiscount = result.PromotionDiscount
	cart.VoucherDiscount = result.VoucherDiscount
	cart.TotalDiscount = result.TotalDiscount
	return warnings, nil
}

// checkVoucherCode re-runs voucher validation to get the precise rejection
// reason for an explicit apply attempt
func (s *CartService) checkVoucherCode(ctx context.Context, cart *entity.Cart, code string) error {
	voucher, err := s.vouchers.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	in, err := s.eligibilityInput(ctx, cart)
	if err != nil {
		return err
	}
	return CheckVoucher(in, voucher)
}

func (s *CartService) eligibilityInput(ctx context.Context, cart *entity.Cart) (EligibilityInput, error) {
	in := EligibilityInput{
		Subtotal:   cart.Subtotal(),
		ProductIDs: cart.ProductIDSet(),
		CustomerID: cart.CustomerID,
		Today:      time.Now(),
	}
	if cart.CustomerID != nil {
		redeemed, err := s.redemptions.RedeemedRuleIDs(ctx, *cart.CustomerID)
		if err != nil {
			return in, err
		}
		in.Redeemed = redeemed
	}
	return in, nil
}
