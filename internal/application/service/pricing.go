package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/pkg/apperror"
)

// Voucher rejection reasons. Callers surface these verbatim so the cashier
// knows why a code was refused.
var (
	ErrVoucherNotFound      = apperror.NewNotFoundError("Voucher")
	ErrVoucherNotStarted    = apperror.NewBadRequestError("Voucher is not active yet")
	ErrVoucherExpired       = apperror.NewBadRequestError("Voucher has expired")
	ErrVoucherExhausted     = apperror.NewBadRequestError("Voucher has no uses left")
	ErrVoucherMinPurchase   = apperror.NewBadRequestError("Cart subtotal is below the voucher minimum purchase")
	ErrVoucherProductScope  = apperror.NewBadRequestError("Voucher does not apply to any product in the cart")
	ErrVoucherCustomerScope = apperror.NewBadRequestError("Voucher is not available for this customer")
	ErrVoucherRedeemed      = apperror.NewBadRequestError("Voucher was already used by this customer")
)

// EligibilityInput is a snapshot of everything eligibility depends on. The
// evaluator itself is pure: re-running it with the same input always yields
// the same result, so it is recomputed on every cart mutation.
type EligibilityInput struct {
	Subtotal   int64
	ProductIDs map[uuid.UUID]struct{}
	CustomerID *uuid.UUID
	// Redeemed is the (customer, rule) redemption index for the selected
	// customer; nil when no customer is selected.
	Redeemed map[uuid.UUID]bool
	Today    time.Time
}

func (in *EligibilityInput) redeemed(ruleID uuid.UUID) bool {
	return in.Redeemed != nil && in.Redeemed[ruleID]
}

// EligiblePromotions filters the catalog down to promotions applicable to the
// cart. All returned promotions apply simultaneously (promotions stack).
func EligiblePromotions(in EligibilityInput, promotions []entity.Promotion) []entity.Promotion {
	var eligible []entity.Promotion
	for i := range promotions {
		p := &promotions[i]
		if p.Status(in.Today) != enum.PromoActive {
			continue
		}
		if in.Subtotal < p.MinPurchase {
			continue
		}
		if !p.AppliesToProducts(in.ProductIDs) {
			continue
		}
		if !p.AppliesToCustomer(in.CustomerID) {
			continue
		}
		// One redemption per customer, lifetime
		if in.CustomerID != nil && in.redeemed(p.ID) {
			continue
		}
		eligible = append(eligible, *p)
	}
	return eligible
}

// CheckVoucher validates a voucher against the cart, returning nil when it is
// eligible or the specific rejection reason otherwise
func CheckVoucher(in EligibilityInput, v *entity.Voucher) error {
	if v == nil {
		return ErrVoucherNotFound
	}

	day := entity.DateOnly(in.Today)
	switch {
	case day.After(entity.DateOnly(v.EndDate)):
		return ErrVoucherExpired
	case day.Before(entity.DateOnly(v.StartDate)):
		return ErrVoucherNotStarted
	case v.Exhausted():
		return ErrVoucherExhausted
	case in.Subtotal < v.MinPurchase:
		return ErrVoucherMinPurchase
	case !v.AppliesToProducts(in.ProductIDs):
		return ErrVoucherProductScope
	case !v.AppliesToCustomer(in.CustomerID):
		return ErrVoucherCustomerScope
	case in.CustomerID != nil && in.redeemed(v.ID):
		return ErrVoucherRedeemed
	}
	return nil
}

// PromotionRawDiscount computes one promotion's discount against a subtotal.
// Buy-get promotions grant free items, not money, so they contribute zero.
func PromotionRawDiscount(subtotal int64, p *entity.Promotion) int64 {
	switch p.Type {
	case enum.DiscountPercent:
		return subtotal * p.Value / 100
	case enum.DiscountFixed:
		if p.Value > subtotal {
			return subtotal
		}
		return p.Value
	default:
		return 0
	}
}

// VoucherRawDiscount computes a voucher's discount against a subtotal,
// applying the max-discount cap for percent vouchers. Fixed vouchers discount
// at most the subtotal, never producing a negative total.
func VoucherRawDiscount(subtotal int64, v *entity.Voucher) int64 {
	var d int64
	switch v.Type {
	case enum.DiscountPercent:
		d = subtotal * v.Value / 100
		if v.MaxDiscount > 0 && d > v.MaxDiscount {
			d = v.MaxDiscount
		}
	case enum.DiscountFixed:
		d = v.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// DiscountResult is the computed discount breakdown for a cart
type DiscountResult struct {
	PromotionDiscount int64
	VoucherDiscount   int64
	TotalDiscount     int64
}

// ComputeDiscounts combines all eligible promotions and the eligible voucher
// into a discount breakdown. The combined discount never exceeds the
// subtotal.
func ComputeDiscounts(subtotal int64, promotions []entity.Promotion, voucher *entity.Voucher) DiscountResult {
	var result DiscountResult
	for i := range promotions {
		result.PromotionDiscount += PromotionRawDiscount(subtotal, &promotions[i])
	}
	if voucher != nil {
		result.VoucherDiscount = VoucherRawDiscount(subtotal, voucher)
	}

	result.TotalDiscount = result.PromotionDiscount + result.VoucherDiscount
	if result.TotalDiscount > subtotal {
		result.TotalDiscount = subtotal
	}
	return result
}

// PromotionShare is one promotion's attributed slice of the capped discount
type PromotionShare struct {
	Promotion  entity.Promotion
	Raw        int64
	Attributed int64
}

// AttributePromotionShares distributes the capped promotion discount across
// the applied promotions in proportion to their raw discounts, rounding each
// share to whole cents. The last share absorbs the rounding remainder so the
// shares sum exactly to cappedTotal.
func AttributePromotionShares(subtotal, cappedTotal int64, promotions []entity.Promotion) []PromotionShare {
	if len(promotions) == 0 {
		return nil
	}

	shares := make([]PromotionShare, 0, len(promotions))
	var rawSum int64
	for i := range promotions {
		raw := PromotionRawDiscount(subtotal, &promotions[i])
		shares = append(shares, PromotionShare{Promotion: promotions[i], Raw: raw})
		rawSum += raw
	}
	if rawSum == 0 {
		return shares
	}
	if cappedTotal > rawSum {
		cappedTotal = rawSum
	}

	var assigned int64
	lastNonZero := -1
	for i := range shares {
		if shares[i].Raw == 0 {
			continue
		}
		// attributed_i = raw_i * (capped / rawSum), rounded half-up
		shares[i].Attributed = (shares[i].Raw*cappedTotal + rawSum/2) / rawSum
		assigned += shares[i].Attributed
		lastNonZero = i
	}
	if lastNonZero >= 0 {
		shares[lastNonZero].Attributed += cappedTotal - assigned
	}
	return shares
}
