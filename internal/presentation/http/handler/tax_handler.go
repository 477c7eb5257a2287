package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// TaxHandler handles tax type HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

type taxRequest struct {
	Name             string  `json:"name" binding:"required"`
	Value            float64 `json:"value"`
	IsPercentage     bool    `json:"is_percentage"`
	CalculationOrder int     `json:"calculation_order"`
	AppliesToSelling bool    `json:"applies_to_selling"`
	IsActive         bool    `json:"is_active"`
}

func (r *taxRequest) toInput(userID uuid.UUID) *service.TaxInput {
	return &service.TaxInput{
		UserID:           userID,
		Name:             r.Name,
		Value:            decimal.NewFromFloat(r.Value),
		IsPercentage:     r.IsPercentage,
		CalculationOrder: r.CalculationOrder,
		AppliesToSelling: r.AppliesToSelling,
		IsActive:         r.IsActive,
	}
}

// Create handles creating a tax type
func (h *TaxHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), req.toInput(*userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax created successfully", tax)
}

// Update handles updating a tax type
func (h *TaxHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), id, req.toInput(*userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax updated successfully", tax)
}

// Get handles getting a single tax type
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.GetTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax retrieved successfully", tax)
}

// List handles listing tax types
func (h *TaxHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	taxes, err := h.taxService.ListTaxes(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Taxes retrieved successfully", taxes)
}

// Delete handles deleting a tax type
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
