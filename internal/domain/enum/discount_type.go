package enum

// DiscountType represents how a promotion or voucher discounts a sale
type DiscountType string

const (
	// DiscountPercent discounts a percentage of the cart subtotal
	DiscountPercent DiscountType = "percent"
	// DiscountFixed discounts a fixed amount
	DiscountFixed DiscountType = "fixed"
	// DiscountBuyGet grants free items; it carries no monetary discount
	DiscountBuyGet DiscountType = "buyget"
)

// Valid reports whether the discount type is one of the known values
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountPercent, DiscountFixed, DiscountBuyGet:
		return true
	}
	return false
}

// ValidForVoucher reports whether the type is allowed on a voucher.
// Vouchers are restricted to percent and fixed.
func (t DiscountType) ValidForVoucher() bool {
	return t == DiscountPercent || t == DiscountFixed
}
