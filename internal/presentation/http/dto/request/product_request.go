package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Code          string     `json:"code" binding:"omitempty,max=100"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	VatPercentage float64    `json:"vat_percentage" binding:"min=0,max=100"`
	IsActive      *bool      `json:"is_active"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Code          *string    `json:"code" binding:"omitempty,min=1,max=100"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	VatPercentage *float64   `json:"vat_percentage" binding:"omitempty,min=0,max=100"`
	IsActive      *bool      `json:"is_active"`
}
