package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount represents a discount definition. A product may carry at most one
// active non-stackable discount at any time; any number of stackable ones.
type Discount struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string             `gorm:"size:255;not null" json:"name"`
	Type              enum.DiscountType  `gorm:"default:0" json:"type"`
	Value             decimal.Decimal    `gorm:"type:numeric(12,4);not null" json:"value"`
	MaxDiscountAmount *int64             `json:"-"` // Stored in cents, percentage discounts only
	ApplicableOn      enum.DiscountScope `gorm:"default:0" json:"applicable_on"`
	ProductID         *uuid.UUID         `gorm:"type:uuid;index" json:"product_id,omitempty"`
	CategoryID        *uuid.UUID         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CustomerID        *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	IsStackable       bool               `gorm:"default:false" json:"is_stackable"`
	Priority          int                `gorm:"default:0" json:"priority"`
	StartDate         time.Time          `gorm:"not null" json:"start_date"`
	EndDate           time.Time          `gorm:"not null" json:"end_date"`
	UsageLimit        *int               `json:"usage_limit,omitempty"`
	UsedCount         int                `gorm:"default:0" json:"used_count"`
	IsActive          bool               `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Discount) MarshalJSON() ([]byte, error) {
	type Alias Discount
	var maxAmount *float64
	if d.MaxDiscountAmount != nil {
		v := float64(*d.MaxDiscountAmount) / 100
		maxAmount = &v
	}
	return json.Marshal(&struct {
		Alias
		MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	}{
		Alias:             Alias(d),
		MaxDiscountAmount: maxAmount,
	})
}

// ActiveAt reports whether the discount is usable at the given time: enabled,
// within its validity window, and under its usage limit.
func (d *Discount) ActiveAt(at time.Time) bool {
	if !d.IsActive {
		return false
	}
	if at.Before(d.StartDate) || at.After(d.EndDate) {
		return false
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return false
	}
	return true
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
