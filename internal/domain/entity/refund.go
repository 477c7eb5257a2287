package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RefundTransaction represents a full or partial line-level refund computed
// against a settled sale. Amounts are derived from the unit prices and VAT
// rates recorded on the original transaction.
type RefundTransaction struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SellingTransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"selling_transaction_id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount          int64          `gorm:"default:0" json:"-"` // Stored in cents
	TotalVat             int64          `gorm:"default:0" json:"-"` // Stored in cents
	RefundedAt           time.Time      `gorm:"not null" json:"refunded_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	SellingTransaction Transaction  `gorm:"foreignKey:SellingTransactionID" json:"-"`
	User               User         `gorm:"foreignKey:UserID" json:"-"`
	Items              []RefundItem `gorm:"foreignKey:RefundTransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r RefundTransaction) MarshalJSON() ([]byte, error) {
	type Alias RefundTransaction
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		TotalVat    float64 `json:"total_vat"`
	}{
		Alias:       Alias(r),
		TotalAmount: float64(r.TotalAmount) / 100,
		TotalVat:    float64(r.TotalVat) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund transaction
func (r *RefundTransaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RefundTransaction model
func (RefundTransaction) TableName() string {
	return "refund_transactions"
}

// RefundItem represents a returned line bound to an original transaction
// product, with Quantity never exceeding the originally sold quantity.
type RefundItem struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RefundTransactionID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"refund_transaction_id"`
	TransactionProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_product_id"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Quantity             int             `gorm:"not null" json:"quantity"`
	UnitPrice            int64           `gorm:"not null" json:"-"` // Stored in cents
	VatPercentage        decimal.Decimal `gorm:"type:numeric(7,4);default:0" json:"vat_percentage"`
	Amount               int64           `gorm:"not null" json:"-"` // Stored in cents
	VatAmount            int64           `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt            time.Time       `json:"created_at"`

	// Relationships
	RefundTransaction  RefundTransaction  `gorm:"foreignKey:RefundTransactionID" json:"-"`
	TransactionProduct TransactionProduct `gorm:"foreignKey:TransactionProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i RefundItem) MarshalJSON() ([]byte, error) {
	type Alias RefundItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
		VatAmount float64 `json:"vat_amount"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Amount:    float64(i.Amount) / 100,
		VatAmount: float64(i.VatAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund item
func (i *RefundItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RefundItem model
func (RefundItem) TableName() string {
	return "refund_items"
}
