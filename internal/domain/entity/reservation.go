package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation represents a table reservation. Settling a linked transaction
// marks the reservation completed.
type Reservation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TableID     *uuid.UUID     `gorm:"type:uuid;index" json:"table_id,omitempty"`
	CustomerID  *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ReservedAt  time.Time      `gorm:"not null" json:"reserved_at"`
	IsCompleted bool           `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new reservation
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
