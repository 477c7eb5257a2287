package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExchangeTransaction represents an exchange against a settled sale: a set of
// returned lines and a disjoint set of new lines. TotalExchangedAmount is the
// signed difference (positive: customer pays more, negative: refund due).
type ExchangeTransaction struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SellingTransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"selling_transaction_id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalReturnAmount    int64          `gorm:"default:0" json:"-"` // Stored in cents
	TotalNewAmount       int64          `gorm:"default:0" json:"-"` // Stored in cents
	TotalExchangedAmount int64          `gorm:"default:0" json:"-"` // Stored in cents, signed
	ExchangedAt          time.Time      `gorm:"not null" json:"exchanged_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	SellingTransaction Transaction    `gorm:"foreignKey:SellingTransactionID" json:"-"`
	User               User           `gorm:"foreignKey:UserID" json:"-"`
	Items              []ExchangeItem `gorm:"foreignKey:ExchangeTransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e ExchangeTransaction) MarshalJSON() ([]byte, error) {
	type Alias ExchangeTransaction
	return json.Marshal(&struct {
		Alias
		TotalReturnAmount    float64 `json:"total_return_amount"`
		TotalNewAmount       float64 `json:"total_new_amount"`
		TotalExchangedAmount float64 `json:"total_exchanged_amount"`
	}{
		Alias:                Alias(e),
		TotalReturnAmount:    float64(e.TotalReturnAmount) / 100,
		TotalNewAmount:       float64(e.TotalNewAmount) / 100,
		TotalExchangedAmount: float64(e.TotalExchangedAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new exchange transaction
func (e *ExchangeTransaction) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExchangeTransaction model
func (ExchangeTransaction) TableName() string {
	return "exchange_transactions"
}

// ExchangeItem represents one line of an exchange. Returned lines reference
// the original transaction product; new lines carry their own product and
// unit price.
type ExchangeItem struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ExchangeTransactionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"exchange_transaction_id"`
	TransactionProductID  *uuid.UUID `gorm:"type:uuid;index" json:"transaction_product_id,omitempty"`
	ProductID             uuid.UUID  `gorm:"type:uuid;not null" json:"product_id"`
	IsReturn              bool       `gorm:"not null" json:"is_return"`
	Quantity              int        `gorm:"not null" json:"quantity"`
	UnitPrice             int64      `gorm:"not null" json:"-"` // Stored in cents
	Amount                int64      `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt             time.Time  `json:"created_at"`

	// Relationships
	ExchangeTransaction ExchangeTransaction `gorm:"foreignKey:ExchangeTransactionID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i ExchangeItem) MarshalJSON() ([]byte, error) {
	type Alias ExchangeItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Amount:    float64(i.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new exchange item
func (i *ExchangeItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExchangeItem model
func (ExchangeItem) TableName() string {
	return "exchange_items"
}
