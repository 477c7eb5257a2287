package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// DiscountHandler handles discount-related HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

type discountRequest struct {
	Name              string     `json:"name" binding:"required"`
	Type              string     `json:"type" binding:"required"`
	Value             float64    `json:"value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	ApplicableOn      string     `json:"applicable_on" binding:"required"`
	ProductID         *uuid.UUID `json:"product_id"`
	CategoryID        *uuid.UUID `json:"category_id"`
	CustomerID        *uuid.UUID `json:"customer_id"`
	IsStackable       bool       `json:"is_stackable"`
	Priority          int        `json:"priority"`
	StartDate         time.Time  `json:"start_date" binding:"required"`
	EndDate           time.Time  `json:"end_date" binding:"required"`
	UsageLimit        *int       `json:"usage_limit"`
	IsActive          bool       `json:"is_active"`
}

func (r *discountRequest) toInput(userID uuid.UUID) (*service.DiscountInput, error) {
	discountType, err := enum.ParseDiscountType(r.Type)
	if err != nil {
		return nil, err
	}
	scope, err := enum.ParseDiscountScope(r.ApplicableOn)
	if err != nil {
		return nil, err
	}

	return &service.DiscountInput{
		UserID:            userID,
		Name:              r.Name,
		Type:              discountType,
		Value:             decimal.NewFromFloat(r.Value),
		MaxDiscountAmount: r.MaxDiscountAmount,
		ApplicableOn:      scope,
		ProductID:         r.ProductID,
		CategoryID:        r.CategoryID,
		CustomerID:        r.CustomerID,
		IsStackable:       r.IsStackable,
		Priority:          r.Priority,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		UsageLimit:        r.UsageLimit,
		IsActive:          r.IsActive,
	}, nil
}

// Create handles creating a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput(*userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", discount)
}

// Update handles updating a discount
func (h *DiscountHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput(*userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", discount)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", discount)
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	discounts, err := h.discountService.ListDiscounts(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discounts retrieved successfully", discounts)
}

// Delete handles deleting a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// EligibleProducts handles listing the products a discount may be applied to
func (h *DiscountHandler) EligibleProducts(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	products, err := h.discountService.EligibleProducts(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Eligible products retrieved successfully", products)
}
