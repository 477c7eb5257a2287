package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
)

// ReservationService manages table reservations. A reservation attached to a
// transaction is completed automatically when the transaction settles.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
	}
}

// CreateReservationInput represents the create reservation input
type CreateReservationInput struct {
	TableID    *uuid.UUID
	CustomerID *uuid.UUID
	ReservedAt time.Time
}

// CreateReservation books a table
func (s *ReservationService) CreateReservation(ctx context.Context, input *CreateReservationInput) (*entity.Reservation, error) {
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	reservation := &entity.Reservation{
		TableID:    input.TableID,
		CustomerID: input.CustomerID,
		ReservedAt: input.ReservedAt,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetReservation retrieves a reservation by ID
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	return reservation, nil
}

// CompleteReservation marks a reservation as fulfilled
func (s *ReservationService) CompleteReservation(ctx context.Context, id uuid.UUID) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return apperror.NewNotFoundError("Reservation")
	}
	return s.reservationRepo.Complete(ctx, id)
}
