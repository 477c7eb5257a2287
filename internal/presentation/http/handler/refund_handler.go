package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// RefundHandler handles refund-related HTTP requests
type RefundHandler struct {
	refundService *service.RefundService
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

// Create handles recording a refund against a settled transaction
func (h *RefundHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		SellingTransactionID uuid.UUID `json:"selling_transaction_id" binding:"required"`
		Items                []struct {
			TransactionProductID uuid.UUID `json:"transaction_product_id" binding:"required"`
			Quantity             int       `json:"quantity" binding:"required"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateRefundInput{
		SellingTransactionID: req.SellingTransactionID,
		ActingUserID:         *userID,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.RefundItemInput{
			TransactionProductID: item.TransactionProductID,
			Quantity:             item.Quantity,
		})
	}

	refund, err := h.refundService.CreateRefund(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund recorded successfully", refund)
}

// Get handles getting a single refund
func (h *RefundHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid refund ID")
		return
	}

	refund, err := h.refundService.GetRefund(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refund retrieved successfully", refund)
}

// List handles listing refunds
func (h *RefundHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.refundService.ListRefunds(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Refunds retrieved successfully", result)
}
