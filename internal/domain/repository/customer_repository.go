package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// UpdateBalance is the ledger write: it trusts the caller's value and
// overwrites the stored balance without any read-modify-write merge.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateBalance(ctx context.Context, id uuid.UUID, newBalance int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
