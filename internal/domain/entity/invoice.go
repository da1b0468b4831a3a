package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

// Invoice is an immutable record of a settled sale. Item lines and monetary
// fields never change after creation; only PaymentMethod may transition later
// (debt -> cash/transfer when the debt is settled).
type Invoice struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Code              string             `gorm:"size:20;unique;not null" json:"code"`
	IssuedAt          time.Time          `gorm:"not null" json:"issued_at"`
	CustomerID        *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	SubTotal          int64              `gorm:"default:0" json:"-"`
	Discount          int64              `gorm:"default:0" json:"-"` // total discount, capped at subtotal
	PromotionDiscount int64              `gorm:"default:0" json:"-"`
	VoucherDiscount   int64              `gorm:"default:0" json:"-"`
	GrandTotal        int64              `gorm:"default:0" json:"-"`
	PaymentMethod     enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`

	VoucherSnapshot *datatypes.JSONType[VoucherSnapshot]     `gorm:"type:jsonb" json:"voucher_snapshot,omitempty"`
	BankSnapshot    *datatypes.JSONType[BankAccountSnapshot] `gorm:"type:jsonb" json:"bank_snapshot,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer           *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items              []InvoiceItem       `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	PromotionSnapshots []PromotionSnapshot `gorm:"foreignKey:InvoiceID" json:"promotion_snapshots,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// MarshalJSON converts cents to decimal amounts for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal          float64 `json:"sub_total"`
		Discount          float64 `json:"discount"`
		PromotionDiscount float64 `json:"promotion_discount"`
		VoucherDiscount   float64 `json:"voucher_discount"`
		GrandTotal        float64 `json:"grand_total"`
	}{
		Alias:             Alias(i),
		SubTotal:          float64(i.SubTotal) / 100,
		Discount:          float64(i.Discount) / 100,
		PromotionDiscount: float64(i.PromotionDiscount) / 100,
		VoucherDiscount:   float64(i.VoucherDiscount) / 100,
		GrandTotal:        float64(i.GrandTotal) / 100,
	})
}

// InvoiceItem is a frozen line item. Product name, unit and price are
// snapshotted so later catalog edits never change a historical invoice.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Unit      string    `gorm:"size:50" json:"unit"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"-"`
	Total     int64     `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// MarshalJSON converts cents to decimal amounts for API responses
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(it),
		UnitPrice: float64(it.UnitPrice) / 100,
		Total:     float64(it.Total) / 100,
	})
}

// PromotionSnapshot freezes a promotion's terms and the discount amount
// actually attributed to it on one invoice
type PromotionSnapshot struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PromotionID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"promotion_id"`
	Name           string            `gorm:"size:255" json:"name"`
	Type           enum.DiscountType `gorm:"size:20" json:"type"`
	Value          int64             `json:"value"`
	DiscountAmount int64             `gorm:"not null" json:"-"` // attributed share, normalized
	CreatedAt      time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new promotion snapshot
func (s *PromotionSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PromotionSnapshot model
func (PromotionSnapshot) TableName() string {
	return "promotion_snapshots"
}

// MarshalJSON converts cents to decimal amounts for API responses
func (s PromotionSnapshot) MarshalJSON() ([]byte, error) {
	type Alias PromotionSnapshot
	return json.Marshal(&struct {
		Alias
		DiscountAmount float64 `json:"discount_amount"`
	}{
		Alias:          Alias(s),
		DiscountAmount: float64(s.DiscountAmount) / 100,
	})
}

// VoucherSnapshot freezes the applied voucher's terms and actual discount
type VoucherSnapshot struct {
	VoucherID      uuid.UUID         `json:"voucher_id"`
	Code           string            `json:"code"`
	Type           enum.DiscountType `json:"type"`
	Value          int64             `json:"value"`
	DiscountAmount int64             `json:"discount_amount"`
}

// BankAccountSnapshot freezes the bank details and QR description shown at
// payment time
type BankAccountSnapshot struct {
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	QRDescription string `json:"qr_description"`
}
