package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a sale. It is created as a draft, accrues payments
// through settlement and is never deleted, only superseded by linked refund
// or exchange records.
type Transaction struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	TableID       *uuid.UUID             `gorm:"type:uuid" json:"table_id,omitempty"`
	ReservationID *uuid.UUID             `gorm:"type:uuid" json:"reservation_id,omitempty"`
	InvoiceNo     string                 `gorm:"size:100;unique;not null" json:"invoice_no"`
	Status        enum.TransactionStatus `gorm:"default:0" json:"status"`
	TransactionAt time.Time              `gorm:"not null" json:"transaction_at"`

	// Money fields are stored in cents and excluded from JSON; a custom
	// marshaler exposes them as decimals.
	TotalAmount           int64 `gorm:"default:0" json:"-"`
	TotalVat              int64 `gorm:"default:0" json:"-"`
	TotalDiscount         int64 `gorm:"default:0" json:"-"`
	AmountPaidCash        int64 `gorm:"default:0" json:"-"`
	AmountCreditRemaining int64 `gorm:"default:0" json:"-"`

	CreditDays int `gorm:"default:0" json:"credit_days"`

	// StatusUpdatedBy records the operator behind the latest status change.
	StatusUpdatedBy *uuid.UUID     `gorm:"type:uuid" json:"status_updated_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User                 `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Products []TransactionProduct `gorm:"foreignKey:TransactionID" json:"products,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount           float64 `json:"total_amount"`
		TotalVat              float64 `json:"total_vat"`
		TotalDiscount         float64 `json:"total_discount"`
		AmountPaidCash        float64 `json:"amount_paid_cash"`
		AmountCreditRemaining float64 `json:"amount_credit_remaining"`
	}{
		Alias:                 Alias(t),
		TotalAmount:           float64(t.TotalAmount) / 100,
		TotalVat:              float64(t.TotalVat) / 100,
		TotalDiscount:         float64(t.TotalDiscount) / 100,
		AmountPaidCash:        float64(t.AmountPaidCash) / 100,
		AmountCreditRemaining: float64(t.AmountCreditRemaining) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionProduct represents a line item on a transaction. SellingPrice
// and the VAT rate are captured at sale time so later refunds and exchanges
// use the prices that were actually charged.
type TransactionProduct struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	SellingPrice  int64           `gorm:"not null" json:"-"` // Stored in cents
	VatPercentage decimal.Decimal `gorm:"type:numeric(7,4);default:0" json:"vat_percentage"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Transaction Transaction                  `gorm:"foreignKey:TransactionID" json:"-"`
	Product     Product                      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Modifiers   []TransactionProductModifier `gorm:"foreignKey:TransactionProductID" json:"modifiers,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (tp TransactionProduct) MarshalJSON() ([]byte, error) {
	type Alias TransactionProduct
	return json.Marshal(&struct {
		Alias
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(tp),
		SellingPrice: float64(tp.SellingPrice) / 100,
	})
}

// UnitPrice returns the line's effective unit price in cents, selling price
// plus any modifier extras.
func (tp *TransactionProduct) UnitPrice() int64 {
	price := tp.SellingPrice
	for _, m := range tp.Modifiers {
		price += m.ExtraPrice
	}
	return price
}

// BeforeCreate generates a UUID before creating a new transaction product
func (tp *TransactionProduct) BeforeCreate(tx *gorm.DB) error {
	if tp.ID == uuid.Nil {
		tp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionProduct model
func (TransactionProduct) TableName() string {
	return "transaction_products"
}

// TransactionProductModifier represents an add-on applied to a line item
type TransactionProductModifier struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_product_id"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	ExtraPrice           int64     `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt            time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m TransactionProductModifier) MarshalJSON() ([]byte, error) {
	type Alias TransactionProductModifier
	return json.Marshal(&struct {
		Alias
		ExtraPrice float64 `json:"extra_price"`
	}{
		Alias:      Alias(m),
		ExtraPrice: float64(m.ExtraPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new modifier
func (m *TransactionProductModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionProductModifier model
func (TransactionProductModifier) TableName() string {
	return "transaction_product_modifiers"
}
