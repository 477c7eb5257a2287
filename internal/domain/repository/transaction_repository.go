package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Transaction, error)
	GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// UpdateStatus records a status change together with the acting user.
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TransactionStatus, actingUserID uuid.UUID) error
	// UpdatePaymentFields persists the payment-derived fields in one write.
	UpdatePaymentFields(ctx context.Context, id uuid.UUID, amountPaidCash, amountCreditRemaining int64) error
	// GetDue returns transactions with outstanding credit.
	GetDue(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TransactionStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// TransactionProductRepository defines the interface for line item data operations
type TransactionProductRepository interface {
	CreateBatch(ctx context.Context, products []entity.TransactionProduct) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionProduct, error)
	DeleteByTransactionID(ctx context.Context, transactionID uuid.UUID) error
}
