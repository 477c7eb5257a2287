package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxType represents a configurable tax. Percentage taxes apply their value
// against the subtotal; fixed taxes add a flat amount. Taxes are evaluated in
// ascending CalculationOrder and are not compounded on one another.
type TaxType struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Value            decimal.Decimal `gorm:"type:numeric(12,4);not null" json:"value"`
	IsPercentage     bool            `gorm:"default:true" json:"is_percentage"`
	CalculationOrder int             `gorm:"default:0" json:"calculation_order"`
	AppliesToSelling bool            `gorm:"default:true" json:"applies_to_selling"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax type
func (t *TaxType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxType model
func (TaxType) TableName() string {
	return "tax_types"
}
