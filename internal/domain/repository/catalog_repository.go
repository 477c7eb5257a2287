package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Product, error)
}

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error)
}

// TaxTypeRepository defines the interface for tax type data operations
type TaxTypeRepository interface {
	Create(ctx context.Context, tax *entity.TaxType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxType, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TaxType, error)
	Update(ctx context.Context, tax *entity.TaxType) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error)
}
