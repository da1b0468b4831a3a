package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

type cartFixture struct {
	store       *fakeCartStore
	products    *fakeProductRepo
	promotions  *fakePromotionRepo
	redemptions *fakeRedemptionRepo
	vouchers    *fakeVoucherRepo
	customers   *fakeCustomerRepo
	svc         *CartService
	userID      uuid.UUID
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		store:       newFakeCartStore(),
		products:    newFakeProductRepo(),
		promotions:  newFakePromotionRepo(),
		redemptions: newFakeRedemptionRepo(),
		vouchers:    newFakeVoucherRepo(),
		customers:   newFakeCustomerRepo(),
		userID:      uuid.New(),
	}
	f.svc = NewCartService(f.store, f.products, f.promotions, f.redemptions, f.vouchers, f.customers, 5)
	return f
}

func (f *cartFixture) addProduct(name string, price int64, stock int) *entity.Product {
	return f.products.add(entity.Product{
		Name:         name,
		Code:         "SKU-" + name,
		Unit:         "pcs",
		SellingPrice: price,
		Quantity:     stock,
		Active:       true,
	})
}

func TestGetCarts_CreatesInitialCartSet(t *testing.T) {
	f := newCartFixture()

	result, err := f.svc.GetCarts(context.Background(), f.userID)

	require.NoError(t, err)
	require.Len(t, result.Set.Carts, 1)
	assert.Equal(t, result.Set.Carts[0].ID, result.Set.ActiveID)
	assert.True(t, result.Set.Active().IsEmpty())
}

func TestCreateCart_EnforcesLimit(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	// The initial cart plus four more hits the limit of five
	for i := 0; i < 4; i++ {
		_, err := f.svc.CreateCart(ctx, f.userID)
		require.NoError(t, err)
	}

	_, err := f.svc.CreateCart(ctx, f.userID)
	assert.ErrorIs(t, err, ErrCartLimitReached)

	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, result.Set.Carts, 5)
}

func TestCreateCart_NewCartBecomesActive(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	first, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	firstID := first.Set.ActiveID

	result, err := f.svc.CreateCart(ctx, f.userID)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, result.Set.ActiveID)
	assert.Len(t, result.Set.Carts, 2)
}

func TestSwitchCart(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	first, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	firstID := first.Set.ActiveID

	_, err = f.svc.CreateCart(ctx, f.userID)
	require.NoError(t, err)

	result, err := f.svc.SwitchCart(ctx, f.userID, firstID)
	require.NoError(t, err)
	assert.Equal(t, firstID, result.Set.ActiveID)

	_, err = f.svc.SwitchCart(ctx, f.userID, "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestDeleteCart_LastCartRejected(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.DeleteCart(ctx, f.userID, result.Set.ActiveID)
	assert.ErrorIs(t, err, ErrLastCart)
}

func TestDeleteCart_ActiveMovesToRemaining(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	first, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	firstID := first.Set.ActiveID

	second, err := f.svc.CreateCart(ctx, f.userID)
	require.NoError(t, err)
	secondID := second.Set.ActiveID

	result, err := f.svc.DeleteCart(ctx, f.userID, secondID)
	require.NoError(t, err)
	require.Len(t, result.Set.Carts, 1)
	assert.Equal(t, firstID, result.Set.ActiveID)
}

func TestAddItem(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 15_000_00, 10)

	result, err := f.svc.AddItem(ctx, f.userID, product.ID, 2)
	require.NoError(t, err)

	cart := result.Set.Active()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, int64(30_000_00), cart.Subtotal())

	// Adding the same product again bumps the existing line
	result, err = f.svc.AddItem(ctx, f.userID, product.ID, 3)
	require.NoError(t, err)
	cart = result.Set.Active()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	f := newCartFixture()

	_, err := f.svc.AddItem(context.Background(), f.userID, uuid.New(), 1)
	assert.EqualError(t, err, "Product not found")
}

func TestAddItem_InactiveProduct(t *testing.T) {
	f := newCartFixture()
	product := f.addProduct("Retired", 10_000_00, 5)
	f.products.products[product.ID].Active = false

	_, err := f.svc.AddItem(context.Background(), f.userID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestAddItem_OutOfStock(t *testing.T) {
	f := newCartFixture()
	product := f.addProduct("Empty", 10_000_00, 0)

	_, err := f.svc.AddItem(context.Background(), f.userID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductOutOfStock)
}

func TestAddItem_ClampsToStock(t *testing.T) {
	f := newCartFixture()
	product := f.addProduct("Scarce", 10_000_00, 3)

	result, err := f.svc.AddItem(context.Background(), f.userID, product.ID, 10)
	require.NoError(t, err)

	cart := result.Set.Active()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "quantity reduced to 3")
}

func TestUpdateItemQuantity(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 15_000_00, 10)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 2)
	require.NoError(t, err)

	result, err := f.svc.UpdateItemQuantity(ctx, f.userID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Set.Active().Lines[0].Quantity)

	// Zero removes the line
	result, err = f.svc.UpdateItemQuantity(ctx, f.userID, product.ID, 0)
	require.NoError(t, err)
	assert.True(t, result.Set.Active().IsEmpty())

	_, err = f.svc.UpdateItemQuantity(ctx, f.userID, product.ID, 1)
	assert.EqualError(t, err, "Cart item not found")
}

func TestReprice_DropsVanishedAndOutOfStockLines(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	gone := f.addProduct("Gone", 10_000_00, 5)
	empty := f.addProduct("Empty", 10_000_00, 5)
	kept := f.addProduct("Kept", 10_000_00, 5)

	for _, p := range []uuid.UUID{gone.ID, empty.ID, kept.ID} {
		_, err := f.svc.AddItem(ctx, f.userID, p, 1)
		require.NoError(t, err)
	}

	f.products.products[gone.ID].Active = false
	f.products.products[empty.ID].Quantity = 0

	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)

	cart := result.Set.Active()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, kept.ID, cart.Lines[0].ProductID)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "no longer available")
	assert.Contains(t, result.Warnings[1], "out of stock")
}

func TestReprice_AppliesEligiblePromotions(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	promo := f.promotions.add(activePromotion("10% off", enum.DiscountPercent, 10))

	result, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)

	cart := result.Set.Active()
	require.Len(t, cart.PromotionIDs, 1)
	assert.Equal(t, promo.ID, cart.PromotionIDs[0])
	assert.Equal(t, int64(10_000_00), cart.PromotionDiscount)
	assert.Equal(t, int64(10_000_00), cart.TotalDiscount)
	assert.Equal(t, int64(90_000_00), cart.Total())
}

func TestApplyVoucher(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	f.vouchers.add(activeVoucher("TET10", enum.DiscountPercent, 10))

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)

	// Codes are matched case-insensitively
	result, err := f.svc.ApplyVoucher(ctx, f.userID, "tet10")
	require.NoError(t, err)

	cart := result.Set.Active()
	assert.Equal(t, "TET10", cart.VoucherCode)
	assert.Equal(t, int64(10_000_00), cart.VoucherDiscount)
	assert.Equal(t, int64(90_000_00), cart.Total())
}

func TestApplyVoucher_RejectedWithReason(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 10_000_00, 10)

	minPurchase := activeVoucher("BIG", enum.DiscountPercent, 10)
	minPurchase.MinPurchase = 50_000_00
	f.vouchers.add(minPurchase)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)

	_, err = f.svc.ApplyVoucher(ctx, f.userID, "BIG")
	assert.ErrorIs(t, err, ErrVoucherMinPurchase)

	_, err = f.svc.ApplyVoucher(ctx, f.userID, "MISSING")
	assert.ErrorIs(t, err, ErrVoucherNotFound)

	// A rejected code is never persisted
	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, result.Set.Active().VoucherCode)
}

func TestReprice_ClearsVoucherThatBecameIneligible(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	voucher := activeVoucher("TET10", enum.DiscountPercent, 10)
	f.vouchers.add(voucher)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.ApplyVoucher(ctx, f.userID, "TET10")
	require.NoError(t, err)

	// The voucher runs out between mutations
	f.vouchers.vouchers["TET10"].Quantity = 1
	f.vouchers.vouchers["TET10"].Used = 1

	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)

	cart := result.Set.Active()
	assert.Empty(t, cart.VoucherCode)
	assert.Equal(t, int64(0), cart.VoucherDiscount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Voucher TET10 removed")
}

func TestReprice_VoucherStoreErrorPropagates(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	f.vouchers.add(activeVoucher("TET10", enum.DiscountPercent, 10))

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.ApplyVoucher(ctx, f.userID, "TET10")
	require.NoError(t, err)

	// A transient store failure surfaces as an error instead of quietly
	// clearing the applied code
	f.vouchers.getErr = errors.New("db down")
	_, err = f.svc.GetCarts(ctx, f.userID)
	require.Error(t, err)
	assert.EqualError(t, err, "db down")

	f.vouchers.getErr = nil
	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "TET10", result.Set.Active().VoucherCode)
	assert.Equal(t, int64(10_000_00), result.Set.Active().VoucherDiscount)
}

func TestRemoveVoucher(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	f.vouchers.add(activeVoucher("TET10", enum.DiscountPercent, 10))

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.ApplyVoucher(ctx, f.userID, "TET10")
	require.NoError(t, err)

	result, err := f.svc.RemoveVoucher(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, result.Set.Active().VoucherCode)
	assert.Equal(t, int64(0), result.Set.Active().VoucherDiscount)
}

func TestSetCustomer(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	customer := f.customers.add(entity.Customer{Name: "Chi Lan", Active: true})

	result, err := f.svc.SetCustomer(ctx, f.userID, &customer.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Set.Active().CustomerID)
	assert.Equal(t, customer.ID, *result.Set.Active().CustomerID)

	// Detach
	result, err = f.svc.SetCustomer(ctx, f.userID, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Set.Active().CustomerID)

	unknown := uuid.New()
	_, err = f.svc.SetCustomer(ctx, f.userID, &unknown)
	assert.EqualError(t, err, "Customer not found")
}

func TestSetCustomer_RedeemedPromotionExcluded(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	promo := f.promotions.add(activePromotion("10% off", enum.DiscountPercent, 10))
	customer := f.customers.add(entity.Customer{Name: "Chi Lan", Active: true})
	f.redemptions.markRedeemed(customer.ID, promo.ID)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1)
	require.NoError(t, err)

	// Anonymous cart gets the promotion
	result, err := f.svc.GetCarts(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_00), result.Set.Active().PromotionDiscount)

	// Attaching the customer who already redeemed it drops the discount
	result, err = f.svc.SetCustomer(ctx, f.userID, &customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Set.Active().PromotionDiscount)
	assert.Empty(t, result.Set.Active().PromotionIDs)
}

func TestClearCart_KeepsCustomer(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()
	product := f.addProduct("Milk", 100_000_00, 10)
	customer := f.customers.add(entity.Customer{Name: "Chi Lan", Active: true})

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.SetCustomer(ctx, f.userID, &customer.ID)
	require.NoError(t, err)

	result, err := f.svc.ClearCart(ctx, f.userID)
	require.NoError(t, err)

	cart := result.Set.Active()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.TotalDiscount)
	require.NotNil(t, cart.CustomerID)
	assert.Equal(t, customer.ID, *cart.CustomerID)
}
