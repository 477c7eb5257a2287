package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/application/service"
	"github.com/sellhub/pos-api/internal/presentation/http/dto/response"
)

// ReservationHandler handles reservation-related HTTP requests
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create handles booking a table
func (h *ReservationHandler) Create(c *gin.Context) {
	var req struct {
		TableID    *uuid.UUID `json:"table_id"`
		CustomerID *uuid.UUID `json:"customer_id"`
		ReservedAt time.Time  `json:"reserved_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &service.CreateReservationInput{
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		ReservedAt: req.ReservedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created successfully", reservation)
}

// Get handles getting a single reservation
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation retrieved successfully", reservation)
}

// Complete handles marking a reservation fulfilled
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	if err := h.reservationService.CompleteReservation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation completed successfully", nil)
}
