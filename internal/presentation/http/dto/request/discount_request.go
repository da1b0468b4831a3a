package request

import (
	"time"

	"github.com/google/uuid"
)

// PromotionRequest represents a promotion create/update request
type PromotionRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=255"`
	Type        string      `json:"type" binding:"required,oneof=percent fixed buyget"`
	Value       float64     `json:"value" binding:"min=0"`
	MinPurchase float64     `json:"min_purchase" binding:"min=0"`
	Quantity    int         `json:"quantity" binding:"min=0"`
	StartDate   time.Time   `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate     time.Time   `json:"end_date" binding:"required" time_format:"2006-01-02"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
	CustomerIDs []uuid.UUID `json:"customer_ids"`
}

// VoucherRequest represents a voucher create/update request
type VoucherRequest struct {
	Code        string      `json:"code" binding:"required,min=1,max=50"`
	Name        string      `json:"name" binding:"omitempty,max=255"`
	Type        string      `json:"type" binding:"required,oneof=percent fixed"`
	Value       float64     `json:"value" binding:"required,gt=0"`
	MaxDiscount float64     `json:"max_discount" binding:"min=0"`
	MinPurchase float64     `json:"min_purchase" binding:"min=0"`
	Quantity    int         `json:"quantity" binding:"min=0"`
	StartDate   time.Time   `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate     time.Time   `json:"end_date" binding:"required" time_format:"2006-01-02"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
	CustomerIDs []uuid.UUID `json:"customer_ids"`
}
