package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	cart := NewCart()
	cart.Lines = []CartLine{
		{ProductID: uuid.New(), UnitPrice: 10_000_00, Quantity: 2},
		{ProductID: uuid.New(), UnitPrice: 5_000_00, Quantity: 1},
	}

	assert.Equal(t, int64(25_000_00), cart.Subtotal())

	cart.TotalDiscount = 5_000_00
	assert.Equal(t, int64(20_000_00), cart.Total())

	// An over-discount never produces a negative total
	cart.TotalDiscount = 30_000_00
	assert.Equal(t, int64(0), cart.Total())
}

func TestCartClearForNextSale(t *testing.T) {
	customerID := uuid.New()
	cart := NewCart()
	cart.Lines = []CartLine{{ProductID: uuid.New(), UnitPrice: 10_000_00, Quantity: 1}}
	cart.VoucherCode = "TET10"
	cart.CustomerID = &customerID
	cart.PromotionDiscount = 1_000_00
	cart.VoucherDiscount = 1_000_00
	cart.TotalDiscount = 2_000_00

	cart.ClearForNextSale()

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.VoucherCode)
	assert.Equal(t, int64(0), cart.TotalDiscount)
	require.NotNil(t, cart.CustomerID)
	assert.Equal(t, customerID, *cart.CustomerID)
}

func TestCartSetActive_SelfHeals(t *testing.T) {
	set := NewCartSet()
	require.Len(t, set.Carts, 1)

	set.ActiveID = "dangling"
	active := set.Active()

	assert.Equal(t, set.Carts[0].ID, active.ID)
	assert.Equal(t, set.Carts[0].ID, set.ActiveID)
}

func TestCartSetRoundTrip(t *testing.T) {
	set := NewCartSet()
	set.Active().Lines = []CartLine{{ProductID: uuid.New(), Name: "Milk", UnitPrice: 10_000_00, Quantity: 2}}
	set.Active().VoucherCode = "TET10"

	raw, err := set.Marshal()
	require.NoError(t, err)

	loaded, err := UnmarshalCartSet(raw)
	require.NoError(t, err)
	assert.Equal(t, set.ActiveID, loaded.ActiveID)
	require.Len(t, loaded.Carts, 1)
	assert.Equal(t, "TET10", loaded.Carts[0].VoucherCode)
	assert.Equal(t, int64(20_000_00), loaded.Carts[0].Subtotal())
}
