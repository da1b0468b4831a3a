package request

import "github.com/google/uuid"

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateItemRequest represents a cart line quantity change. Zero removes the
// line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ApplyVoucherRequest represents a voucher application request
type ApplyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// SetCustomerRequest represents attaching a customer to the cart. A null id
// detaches the current customer.
type SetCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// CheckoutRequest represents a checkout commit request
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=cash card transfer debt"`
	NewCustomerName string `json:"new_customer_name" binding:"omitempty,max=255"`
}
