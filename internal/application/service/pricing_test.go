package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

func daysAhead(n int) time.Time {
	return time.Now().AddDate(0, 0, n)
}

func activePromotion(name string, typ enum.DiscountType, value int64) entity.Promotion {
	return entity.Promotion{
		ID:        uuid.New(),
		Name:      name,
		Type:      typ,
		Value:     value,
		StartDate: daysAgo(7),
		EndDate:   daysAhead(7),
	}
}

func activeVoucher(code string, typ enum.DiscountType, value int64) entity.Voucher {
	return entity.Voucher{
		ID:        uuid.New(),
		Code:      code,
		Type:      typ,
		Value:     value,
		StartDate: daysAgo(7),
		EndDate:   daysAhead(7),
	}
}

func TestEligiblePromotions(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	otherProduct := uuid.New()
	otherCustomer := uuid.New()

	ok := activePromotion("Storewide 10%", enum.DiscountPercent, 10)

	notStarted := activePromotion("Upcoming", enum.DiscountPercent, 10)
	notStarted.StartDate = daysAhead(1)

	expired := activePromotion("Past", enum.DiscountPercent, 10)
	expired.EndDate = daysAgo(1)

	exhausted := activePromotion("Used up", enum.DiscountPercent, 10)
	exhausted.Quantity = 5
	exhausted.Used = 5

	tooSmall := activePromotion("Big spender", enum.DiscountPercent, 10)
	tooSmall.MinPurchase = 100_000_00

	wrongProduct := activePromotion("Scoped product", enum.DiscountPercent, 10)
	wrongProduct.ProductIDs = datatypes.JSONSlice[uuid.UUID]{otherProduct}

	wrongCustomer := activePromotion("Scoped customer", enum.DiscountPercent, 10)
	wrongCustomer.CustomerIDs = datatypes.JSONSlice[uuid.UUID]{otherCustomer}

	redeemed := activePromotion("Once only", enum.DiscountPercent, 10)

	in := EligibilityInput{
		Subtotal:   50_000_00,
		ProductIDs: map[uuid.UUID]struct{}{productID: {}},
		CustomerID: &customerID,
		Redeemed:   map[uuid.UUID]bool{redeemed.ID: true},
		Today:      time.Now(),
	}

	eligible := EligiblePromotions(in, []entity.Promotion{
		ok, notStarted, expired, exhausted, tooSmall, wrongProduct, wrongCustomer, redeemed,
	})

	require.Len(t, eligible, 1)
	assert.Equal(t, ok.ID, eligible[0].ID)
}

func TestEligiblePromotions_NoCustomerSkipsScopedRules(t *testing.T) {
	scoped := activePromotion("Members only", enum.DiscountPercent, 10)
	scoped.CustomerIDs = datatypes.JSONSlice[uuid.UUID]{uuid.New()}

	open := activePromotion("Everyone", enum.DiscountFixed, 5_000_00)

	in := EligibilityInput{
		Subtotal:   50_000_00,
		ProductIDs: map[uuid.UUID]struct{}{uuid.New(): {}},
		Today:      time.Now(),
	}

	eligible := EligiblePromotions(in, []entity.Promotion{scoped, open})
	require.Len(t, eligible, 1)
	assert.Equal(t, open.ID, eligible[0].ID)
}

func TestCheckVoucher(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	base := EligibilityInput{
		Subtotal:   50_000_00,
		ProductIDs: map[uuid.UUID]struct{}{productID: {}},
		CustomerID: &customerID,
		Today:      time.Now(),
	}

	t.Run("nil voucher", func(t *testing.T) {
		assert.ErrorIs(t, CheckVoucher(base, nil), ErrVoucherNotFound)
	})

	t.Run("eligible", func(t *testing.T) {
		v := activeVoucher("SALE10", enum.DiscountPercent, 10)
		assert.NoError(t, CheckVoucher(base, &v))
	})

	t.Run("expired", func(t *testing.T) {
		v := activeVoucher("OLD", enum.DiscountPercent, 10)
		v.EndDate = daysAgo(1)
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherExpired)
	})

	t.Run("not started", func(t *testing.T) {
		v := activeVoucher("SOON", enum.DiscountPercent, 10)
		v.StartDate = daysAhead(1)
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherNotStarted)
	})

	t.Run("exhausted", func(t *testing.T) {
		v := activeVoucher("GONE", enum.DiscountPercent, 10)
		v.Quantity = 1
		v.Used = 1
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherExhausted)
	})

	t.Run("min purchase", func(t *testing.T) {
		v := activeVoucher("BIG", enum.DiscountPercent, 10)
		v.MinPurchase = base.Subtotal + 1
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherMinPurchase)
	})

	t.Run("product scope", func(t *testing.T) {
		v := activeVoucher("SCOPED", enum.DiscountPercent, 10)
		v.ProductIDs = datatypes.JSONSlice[uuid.UUID]{uuid.New()}
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherProductScope)
	})

	t.Run("customer scope", func(t *testing.T) {
		v := activeVoucher("MEMBERS", enum.DiscountPercent, 10)
		v.CustomerIDs = datatypes.JSONSlice[uuid.UUID]{uuid.New()}
		assert.ErrorIs(t, CheckVoucher(base, &v), ErrVoucherCustomerScope)
	})

	t.Run("already redeemed", func(t *testing.T) {
		v := activeVoucher("ONCE", enum.DiscountPercent, 10)
		in := base
		in.Redeemed = map[uuid.UUID]bool{v.ID: true}
		assert.ErrorIs(t, CheckVoucher(in, &v), ErrVoucherRedeemed)
	})
}

func TestPromotionRawDiscount(t *testing.T) {
	percent := activePromotion("10%", enum.DiscountPercent, 10)
	assert.Equal(t, int64(5_000_00), PromotionRawDiscount(50_000_00, &percent))

	fixed := activePromotion("Fixed", enum.DiscountFixed, 3_000_00)
	assert.Equal(t, int64(3_000_00), PromotionRawDiscount(50_000_00, &fixed))

	// A fixed discount never exceeds the subtotal
	assert.Equal(t, int64(2_000_00), PromotionRawDiscount(2_000_00, &fixed))

	// Buy-get grants free items, not money
	buyget := activePromotion("Buy 2 get 1", enum.DiscountBuyGet, 1)
	assert.Equal(t, int64(0), PromotionRawDiscount(50_000_00, &buyget))
}

func TestVoucherRawDiscount(t *testing.T) {
	percent := activeVoucher("P10", enum.DiscountPercent, 10)
	assert.Equal(t, int64(5_000_00), VoucherRawDiscount(50_000_00, &percent))

	capped := activeVoucher("P10CAP", enum.DiscountPercent, 10)
	capped.MaxDiscount = 2_000_00
	assert.Equal(t, int64(2_000_00), VoucherRawDiscount(50_000_00, &capped))

	fixed := activeVoucher("F50", enum.DiscountFixed, 50_000_00)
	assert.Equal(t, int64(10_000_00), VoucherRawDiscount(10_000_00, &fixed))
}

func TestComputeDiscounts(t *testing.T) {
	subtotal := int64(500_000_00)
	promo := activePromotion("10% off", enum.DiscountPercent, 10)
	voucher := activeVoucher("TET50", enum.DiscountFixed, 50_000_00)

	result := ComputeDiscounts(subtotal, []entity.Promotion{promo}, &voucher)

	assert.Equal(t, int64(50_000_00), result.PromotionDiscount)
	assert.Equal(t, int64(50_000_00), result.VoucherDiscount)
	assert.Equal(t, int64(100_000_00), result.TotalDiscount)
}

func TestComputeDiscounts_CappedAtSubtotal(t *testing.T) {
	subtotal := int64(10_000_00)
	big := activePromotion("Huge", enum.DiscountFixed, 8_000_00)
	voucher := activeVoucher("MORE", enum.DiscountFixed, 5_000_00)

	result := ComputeDiscounts(subtotal, []entity.Promotion{big}, &voucher)

	assert.Equal(t, int64(8_000_00), result.PromotionDiscount)
	assert.Equal(t, int64(5_000_00), result.VoucherDiscount)
	assert.Equal(t, subtotal, result.TotalDiscount)
}

func TestAttributePromotionShares_SumsExactly(t *testing.T) {
	subtotal := int64(10_000_00)
	a := activePromotion("A", enum.DiscountPercent, 33)
	b := activePromotion("B", enum.DiscountPercent, 33)
	c := activePromotion("C", enum.DiscountPercent, 33)

	// Raw sum 9_900_00 exceeds the capped total, forcing proportional
	// attribution with rounding
	capped := int64(7_777_77)
	shares := AttributePromotionShares(subtotal, capped, []entity.Promotion{a, b, c})

	require.Len(t, shares, 3)
	var sum int64
	for _, share := range shares {
		assert.GreaterOrEqual(t, share.Attributed, int64(0))
		sum += share.Attributed
	}
	assert.Equal(t, capped, sum)
}

func TestAttributePromotionShares_UncappedKeepsRawAmounts(t *testing.T) {
	subtotal := int64(500_000_00)
	promo := activePromotion("10% off", enum.DiscountPercent, 10)

	shares := AttributePromotionShares(subtotal, 50_000_00, []entity.Promotion{promo})

	require.Len(t, shares, 1)
	assert.Equal(t, int64(50_000_00), shares[0].Raw)
	assert.Equal(t, int64(50_000_00), shares[0].Attributed)
}

func TestAttributePromotionShares_BuyGetOnly(t *testing.T) {
	buyget := activePromotion("Buy 2 get 1", enum.DiscountBuyGet, 1)

	shares := AttributePromotionShares(10_000_00, 0, []entity.Promotion{buyget})

	require.Len(t, shares, 1)
	assert.Equal(t, int64(0), shares[0].Raw)
	assert.Equal(t, int64(0), shares[0].Attributed)
}

func TestAttributePromotionShares_CappedTotalClampedToRawSum(t *testing.T) {
	promo := activePromotion("Small", enum.DiscountFixed, 1_000_00)

	shares := AttributePromotionShares(10_000_00, 5_000_00, []entity.Promotion{promo})

	require.Len(t, shares, 1)
	assert.Equal(t, int64(1_000_00), shares[0].Attributed)
}
