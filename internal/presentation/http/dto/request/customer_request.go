package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// DebtAmountRequest represents a manual debt add/pay request. Amount is in
// decimal currency units.
type DebtAmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note" binding:"omitempty,max=500"`
}

// PayInvoicesRequest represents a pay-against-invoices request
type PayInvoicesRequest struct {
	InvoiceIDs    []uuid.UUID `json:"invoice_ids" binding:"required,min=1"`
	PaymentMethod string      `json:"payment_method" binding:"required,oneof=cash transfer"`
}
