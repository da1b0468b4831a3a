package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

// Voucher is a single-code discount. At most one voucher applies per cart and
// its type is restricted to percent or fixed.
type Voucher struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code        string            `gorm:"size:50;unique;not null" json:"code"`
	Name        string            `gorm:"size:255" json:"name"`
	Type        enum.DiscountType `gorm:"size:20;not null" json:"type"`
	Value       int64             `gorm:"not null" json:"value"`
	MaxDiscount int64             `gorm:"default:0" json:"max_discount"` // cap for percent type, 0 = none
	MinPurchase int64             `gorm:"default:0" json:"min_purchase"`
	Quantity    int               `gorm:"default:0" json:"quantity"` // 0 = unlimited
	Used        int               `gorm:"default:0" json:"used"`
	StartDate   time.Time         `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time         `gorm:"type:date;not null" json:"end_date"`

	ProductIDs  datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"product_ids,omitempty"`
	CustomerIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"customer_ids,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID and normalizes the code before creating
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Code = NormalizeVoucherCode(v.Code)
	return nil
}

// TableName returns the table name for the Voucher model
func (Voucher) TableName() string {
	return "vouchers"
}

// NormalizeVoucherCode canonicalizes a voucher code for case-insensitive matching
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// MatchesCode reports whether the entered code matches, case-insensitively
func (v *Voucher) MatchesCode(code string) bool {
	return v.Code == NormalizeVoucherCode(code)
}

// Exhausted reports whether the usage quota is used up
func (v *Voucher) Exhausted() bool {
	return v.Quantity > 0 && v.Used >= v.Quantity
}

// Status derives the lifecycle status from today's date and usage
func (v *Voucher) Status(today time.Time) enum.PromoStatus {
	day := DateOnly(today)
	if day.After(DateOnly(v.EndDate)) {
		return enum.PromoExpired
	}
	if day.Before(DateOnly(v.StartDate)) || v.Exhausted() {
		return enum.PromoInactive
	}
	return enum.PromoActive
}

// InDateRange reports whether today falls within [StartDate, EndDate],
// inclusive by calendar date
func (v *Voucher) InDateRange(today time.Time) bool {
	day := DateOnly(today)
	return !day.Before(DateOnly(v.StartDate)) && !day.After(DateOnly(v.EndDate))
}

// AppliesToProducts reports whether the allow-list intersects the cart
func (v *Voucher) AppliesToProducts(cartProducts map[uuid.UUID]struct{}) bool {
	if len(v.ProductIDs) == 0 {
		return true
	}
	for _, id := range v.ProductIDs {
		if _, ok := cartProducts[id]; ok {
			return true
		}
	}
	return false
}

// AppliesToCustomer reports whether the allow-list contains the customer
func (v *Voucher) AppliesToCustomer(customerID *uuid.UUID) bool {
	if len(v.CustomerIDs) == 0 {
		return true
	}
	if customerID == nil {
		return false
	}
	for _, id := range v.CustomerIDs {
		if id == *customerID {
			return true
		}
	}
	return false
}
