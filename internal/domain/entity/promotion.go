package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

// Promotion is a shop-wide automatic discount rule. Eligible promotions stack
// with each other (unlike vouchers).
type Promotion struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Type        enum.DiscountType `gorm:"size:20;not null" json:"type"`
	Value       int64             `gorm:"not null" json:"value"` // percent points, or cents for fixed
	MinPurchase int64             `gorm:"default:0" json:"min_purchase"`
	Quantity    int               `gorm:"default:0" json:"quantity"` // 0 = unlimited
	Used        int               `gorm:"default:0" json:"used"`
	StartDate   time.Time         `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time         `gorm:"type:date;not null" json:"end_date"`

	// nil allow-list means "applies to everything"
	ProductIDs  datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"product_ids,omitempty"`
	CustomerIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"customer_ids,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promotion
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Promotion model
func (Promotion) TableName() string {
	return "promotions"
}

// Exhausted reports whether the usage quota is used up
func (p *Promotion) Exhausted() bool {
	return p.Quantity > 0 && p.Used >= p.Quantity
}

// Status derives the lifecycle status from today's date and usage.
// It is never read from storage.
func (p *Promotion) Status(today time.Time) enum.PromoStatus {
	day := DateOnly(today)
	if day.After(DateOnly(p.EndDate)) {
		return enum.PromoExpired
	}
	if day.Before(DateOnly(p.StartDate)) || p.Exhausted() {
		return enum.PromoInactive
	}
	return enum.PromoActive
}

// InDateRange reports whether today falls within [StartDate, EndDate],
// inclusive by calendar date
func (p *Promotion) InDateRange(today time.Time) bool {
	day := DateOnly(today)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}

// AppliesToProducts reports whether the allow-list intersects the given cart
// product ids (nil list applies to all)
func (p *Promotion) AppliesToProducts(cartProducts map[uuid.UUID]struct{}) bool {
	if len(p.ProductIDs) == 0 {
		return true
	}
	for _, id := range p.ProductIDs {
		if _, ok := cartProducts[id]; ok {
			return true
		}
	}
	return false
}

// AppliesToCustomer reports whether the allow-list contains the customer
// (nil list applies to all)
func (p *Promotion) AppliesToCustomer(customerID *uuid.UUID) bool {
	if len(p.CustomerIDs) == 0 {
		return true
	}
	if customerID == nil {
		return false
	}
	for _, id := range p.CustomerIDs {
		if id == *customerID {
			return true
		}
	}
	return false
}

// DateOnly truncates a timestamp to its calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
