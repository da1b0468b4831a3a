package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Redemption records that a customer has redeemed a discount rule (promotion
// or voucher). Each rule allows one redemption per customer for its lifetime;
// this index makes the check O(1) instead of scanning invoice history.
type Redemption struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_redemption_customer_rule" json:"customer_id"`
	RuleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_redemption_customer_rule" json:"rule_id"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new redemption record
func (r *Redemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Redemption model
func (Redemption) TableName() string {
	return "redemptions"
}
