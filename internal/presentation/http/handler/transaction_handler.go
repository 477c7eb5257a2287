package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/internal/domain/settlement"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// TransactionHandler handles transaction lifecycle HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	settlementService  *service.SettlementService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	settlementService *service.SettlementService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		settlementService:  settlementService,
	}
}

type lineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Modifiers []struct {
		Name       string  `json:"name" binding:"required"`
		ExtraPrice float64 `json:"extra_price"`
	} `json:"modifiers"`
}

func toLineInputs(items []lineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, 0, len(items))
	for _, item := range items {
		input := service.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		for _, mod := range item.Modifiers {
			input.Modifiers = append(input.Modifiers, service.LineModifierInput{
				Name:       mod.Name,
				ExtraPrice: mod.ExtraPrice,
			})
		}
		inputs = append(inputs, input)
	}
	return inputs
}

// Create handles creating a draft transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID    *uuid.UUID        `json:"customer_id"`
		TableID       *uuid.UUID        `json:"table_id"`
		ReservationID *uuid.UUID        `json:"reservation_id"`
		CreditDays    int               `json:"credit_days"`
		Items         []lineItemRequest `json:"items" binding:"required,min=1"`
		DiscountIDs   []uuid.UUID       `json:"discount_ids"`
		TaxTypeIDs    []uuid.UUID       `json:"tax_type_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		UserID:        *userID,
		CustomerID:    req.CustomerID,
		TableID:       req.TableID,
		ReservationID: req.ReservationID,
		CreditDays:    req.CreditDays,
		Items:         toLineInputs(req.Items),
		DiscountIDs:   req.DiscountIDs,
		TaxTypeIDs:    req.TaxTypeIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", tx)
}

// Update handles replacing a draft transaction's lines
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req struct {
		Items       []lineItemRequest `json:"items" binding:"required,min=1"`
		DiscountIDs []uuid.UUID       `json:"discount_ids"`
		TaxTypeIDs  []uuid.UUID       `json:"tax_type_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), &service.UpdateTransactionInput{
		TransactionID: id,
		Items:         toLineInputs(req.Items),
		DiscountIDs:   req.DiscountIDs,
		TaxTypeIDs:    req.TaxTypeIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", tx)
}

// Get handles getting a single transaction with its lines
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// List handles listing transactions with filtering
func (h *TransactionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sort_by", "transaction_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseTransactionStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &end
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// ListDue handles listing transactions with outstanding credit
func (h *TransactionHandler) ListDue(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.transactionService.GetDueTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due transactions retrieved successfully", result)
}

// Bill handles moving a draft to billed
func (h *TransactionHandler) Bill(c *gin.Context) {
	h.transition(c, h.transactionService.BillTransaction, "Transaction billed successfully")
}

// Hold handles parking a transaction
func (h *TransactionHandler) Hold(c *gin.Context) {
	h.transition(c, h.transactionService.HoldTransaction, "Transaction held successfully")
}

// Cancel handles cancelling a transaction
func (h *TransactionHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transactionService.CancelTransaction, "Transaction cancelled successfully")
}

// transition runs a status-change operation and maps invalid transitions to
// 409 Conflict.
func (h *TransactionHandler) transition(c *gin.Context, op func(ctx context.Context, actingUserID, transactionID uuid.UUID) (*entity.Transaction, error), message string) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := op(c.Request.Context(), *userID, id)
	if err != nil {
		var transitionErr *enum.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			response.ErrorWithCode(c, 409, transitionErr.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, message, tx)
}

// Settle handles applying a payment to a transaction. A settlement already
// running for the same transaction is reported as a no-op, not an error.
func (h *TransactionHandler) Settle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req struct {
		Payment float64 `json:"payment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	outcome, err := h.settlementService.SettleTransaction(c.Request.Context(), &service.SettleInput{
		TransactionID: id,
		ActingUserID:  *userID,
		Payment:       req.Payment,
	})
	if err != nil {
		if errors.Is(err, settlement.ErrSettlementInProgress) {
			response.OK(c, "Settlement already in progress", nil)
			return
		}
		var transitionErr *enum.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			response.ErrorWithCode(c, 409, transitionErr.Error())
			return
		}
		if errors.Is(err, settlement.ErrInvalidPayment) || errors.Is(err, settlement.ErrCreditNotAllowed) {
			response.ErrorWithCode(c, 422, err.Error())
			return
		}
		if errors.Is(err, settlement.ErrRollbackFailed) {
			response.InternalServerError(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction settled successfully", outcome)
}
