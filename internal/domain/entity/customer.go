package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer of the store. BalanceAmount is the running
// ledger value against the customer: positive means the customer owes the
// store, negative means the store owes the customer (store credit). It is
// mutated only through the balance ledger as a consequence of settlement.
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	BalanceAmount int64          `gorm:"default:0" json:"-"` // Stored in cents, signed
	CreditAllowed bool           `gorm:"default:false" json:"credit_allowed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		BalanceAmount float64 `json:"balance_amount"`
	}{
		Alias:         Alias(c),
		BalanceAmount: float64(c.BalanceAmount) / 100,
	})
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
