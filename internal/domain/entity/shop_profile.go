package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopProfile is the shop's singleton configuration row. It also carries the
// invoice counter consumed by the checkout code allocator.
type ShopProfile struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Address *string   `gorm:"type:text" json:"address,omitempty"`
	Phone   *string   `gorm:"size:50" json:"phone,omitempty"`

	BankName          *string `gorm:"size:255" json:"bank_name,omitempty"`
	BankAccountNumber *string `gorm:"size:100" json:"bank_account_number,omitempty"`
	BankAccountHolder *string `gorm:"size:255" json:"bank_account_holder,omitempty"`

	InvoiceCounter int64 `gorm:"default:0" json:"invoice_counter"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the shop profile
func (s *ShopProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopProfile model
func (ShopProfile) TableName() string {
	return "shop_profiles"
}

// HasBankAccount reports whether transfer payments can show a QR code
func (s *ShopProfile) HasBankAccount() bool {
	return s.BankName != nil && s.BankAccountNumber != nil
}
