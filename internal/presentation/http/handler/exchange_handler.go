package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// ExchangeHandler handles exchange-related HTTP requests
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// Create handles recording an exchange against a settled transaction
func (h *ExchangeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		SellingTransactionID uuid.UUID `json:"selling_transaction_id" binding:"required"`
		ReturnedItems        []struct {
			TransactionProductID uuid.UUID `json:"transaction_product_id" binding:"required"`
			Quantity             int       `json:"quantity" binding:"required"`
		} `json:"returned_items" binding:"required,min=1"`
		NewItems []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required"`
		} `json:"new_items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateExchangeInput{
		SellingTransactionID: req.SellingTransactionID,
		ActingUserID:         *userID,
	}
	for _, item := range req.ReturnedItems {
		input.ReturnedItems = append(input.ReturnedItems, service.ReturnItemInput{
			TransactionProductID: item.TransactionProductID,
			Quantity:             item.Quantity,
		})
	}
	for _, item := range req.NewItems {
		input.NewItems = append(input.NewItems, service.NewItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	exchange, err := h.exchangeService.CreateExchange(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Exchange recorded successfully", exchange)
}

// Get handles getting a single exchange
func (h *ExchangeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exchange ID")
		return
	}

	exchange, err := h.exchangeService.GetExchange(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange retrieved successfully", exchange)
}

// List handles listing exchanges
func (h *ExchangeHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.exchangeService.ListExchanges(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Exchanges retrieved successfully", result)
}
