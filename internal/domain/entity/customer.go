package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

// Customer represents a shop customer, including their running debt state.
//
// DebtAmount is signed: nil means debt was never tracked, 0 means settled,
// positive means the customer owes the shop, negative means the shop owes the
// customer (overpayment).
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Phone   *string   `gorm:"size:50" json:"phone,omitempty"`
	Email   *string   `gorm:"size:255" json:"email,omitempty"`
	Address *string   `gorm:"type:text" json:"address,omitempty"`
	Active  bool      `gorm:"default:true" json:"active"`

	DebtAmount     *int64                         `json:"-"`
	DebtInvoiceIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb" json:"debt_invoice_ids,omitempty"`

	// Purchase statistics, maintained exactly once per invoice at checkout.
	TotalSpent        int64      `gorm:"default:0" json:"-"`
	PurchaseCount     int        `gorm:"default:0" json:"purchase_count"`
	PurchaseFrequency float64    `gorm:"default:0" json:"purchase_frequency"` // purchases per 30 days
	LastPurchaseDate  *time.Time `json:"last_purchase_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	DebtEntries []DebtEntry `gorm:"foreignKey:CustomerID" json:"debt_entries,omitempty"`
	Invoices    []Invoice   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// MarshalJSON converts cents to decimal amounts for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	out := &struct {
		Alias
		DebtAmount *float64 `json:"debt_amount,omitempty"`
		TotalSpent float64  `json:"total_spent"`
	}{
		Alias:      Alias(c),
		TotalSpent: float64(c.TotalSpent) / 100,
	}
	if c.DebtAmount != nil {
		amount := float64(*c.DebtAmount) / 100
		out.DebtAmount = &amount
	}
	return json.Marshal(out)
}

// CurrentDebt returns the current balance, treating "never tracked" as zero
func (c *Customer) CurrentDebt() int64 {
	if c.DebtAmount == nil {
		return 0
	}
	return *c.DebtAmount
}

// HasDebtHistory reports whether debt tracking was ever initialized
func (c *Customer) HasDebtHistory() bool {
	return c.DebtAmount != nil
}

// DebtEntry is one immutable line in a customer's debt history. Entries are
// only ever appended, never edited or deleted.
type DebtEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	PreviousAmount *int64          `json:"-"` // absent only on the initializing entry
	NewAmount      int64           `gorm:"not null" json:"-"`
	ChangeAmount   int64           `gorm:"not null" json:"-"`
	Action         enum.DebtAction `gorm:"size:10;not null" json:"action"`
	Note           *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new debt entry
func (e *DebtEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DebtEntry model
func (DebtEntry) TableName() string {
	return "debt_entries"
}

// MarshalJSON converts cents to decimal amounts for API responses
func (e DebtEntry) MarshalJSON() ([]byte, error) {
	type Alias DebtEntry
	out := &struct {
		Alias
		PreviousAmount *float64 `json:"previous_amount,omitempty"`
		NewAmount      float64  `json:"new_amount"`
		ChangeAmount   float64  `json:"change_amount"`
	}{
		Alias:        Alias(e),
		NewAmount:    float64(e.NewAmount) / 100,
		ChangeAmount: float64(e.ChangeAmount) / 100,
	}
	if e.PreviousAmount != nil {
		prev := float64(*e.PreviousAmount) / 100
		out.PreviousAmount = &prev
	}
	return json.Marshal(out)
}
