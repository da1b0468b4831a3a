package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CartLine is one product line in an in-progress sale. Price and stock are
// snapshotted at add-time; quantity is re-clamped against live stock on every
// mutation.
type CartLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	UnitPrice  int64     `json:"unit_price"`   // cents, snapshot at add-time
	StockAtAdd int       `json:"stock_at_add"` // live stock when the line was added
	Quantity   int       `json:"quantity"`
}

// Total returns the line total in cents
func (l *CartLine) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is one in-progress, not-yet-settled sale. Carts are value objects
// persisted as JSON in the cart store, not database rows.
type Cart struct {
	ID          string     `json:"id"`
	Lines       []CartLine `json:"lines"`
	VoucherCode string     `json:"voucher_code,omitempty"`
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`

	// Discount state recomputed on every mutation
	PromotionIDs      []uuid.UUID `json:"promotion_ids,omitempty"`
	PromotionDiscount int64       `json:"promotion_discount"`
	VoucherDiscount   int64       `json:"voucher_discount"`
	TotalDiscount     int64       `json:"total_discount"`

	CreatedAt time.Time `json:"created_at"`
}

// NewCart creates an empty cart with a fresh id
func NewCart() Cart {
	return Cart{
		ID:        uuid.New().String(),
		Lines:     []CartLine{},
		CreatedAt: time.Now(),
	}
}

// Subtotal returns the sum of all line totals in cents
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for i := range c.Lines {
		subtotal += c.Lines[i].Total()
	}
	return subtotal
}

// Total returns the payable amount after discounts
func (c *Cart) Total() int64 {
	total := c.Subtotal() - c.TotalDiscount
	if total < 0 {
		return 0
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ProductIDSet returns the set of product ids currently in the cart
func (c *Cart) ProductIDSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(c.Lines))
	for i := range c.Lines {
		set[c.Lines[i].ProductID] = struct{}{}
	}
	return set
}

// FindLine returns the line for a product, or nil
func (c *Cart) FindLine(productID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine deletes the line for a product if present
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// ClearForNextSale empties items and discount state but keeps the selected
// customer for repeat sales
func (c *Cart) ClearForNextSale() {
	c.Lines = []CartLine{}
	c.VoucherCode = ""
	c.PromotionIDs = nil
	c.PromotionDiscount = 0
	c.VoucherDiscount = 0
	c.TotalDiscount = 0
}

// CartSet is the full multi-cart state for one cashier. Between 1 and 5 carts
// exist at all times; exactly one is active.
type CartSet struct {
	ActiveID string `json:"active_id"`
	Carts    []Cart `json:"carts"`
}

// NewCartSet creates a cart set holding a single empty active cart
func NewCartSet() *CartSet {
	cart := NewCart()
	return &CartSet{
		ActiveID: cart.ID,
		Carts:    []Cart{cart},
	}
}

// Active returns the currently active cart. The cart set invariant guarantees
// it exists.
func (s *CartSet) Active() *Cart {
	if c := s.Find(s.ActiveID); c != nil {
		return c
	}
	// Self-heal a dangling active pointer
	s.ActiveID = s.Carts[0].ID
	return &s.Carts[0]
}

// Find returns the cart with the given id, or nil
func (s *CartSet) Find(id string) *Cart {
	for i := range s.Carts {
		if s.Carts[i].ID == id {
			return &s.Carts[i]
		}
	}
	return nil
}

// Marshal serializes the cart set for the cart store
func (s *CartSet) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalCartSet deserializes a cart set from the cart store
func UnmarshalCartSet(data []byte) (*CartSet, error) {
	var set CartSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return &set, nil
}
