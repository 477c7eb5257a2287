package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// RefundRepository defines the interface for refund data operations
type RefundRepository interface {
	Create(ctx context.Context, refund *entity.RefundTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RefundTransaction, error)
	GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.RefundTransaction, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.RefundTransaction, int64, error)
}

// ExchangeRepository defines the interface for exchange data operations
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.ExchangeTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeTransaction, error)
	GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.ExchangeTransaction, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.ExchangeTransaction, int64, error)
}

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) error
}
