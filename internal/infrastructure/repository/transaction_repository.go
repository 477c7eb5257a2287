package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	domainRepo "github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).First(&tx, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.Modifiers").
		Preload("Customer").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("transaction_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("transaction_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "transaction_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Preload("Customer").
		Find(&transactions).Error

	return transactions, total, err
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TransactionStatus, actingUserID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"status_updated_by": actingUserID,
		}).Error
}

func (r *transactionRepository) UpdatePaymentFields(ctx context.Context, id uuid.UUID, amountPaidCash, amountCreditRemaining int64) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount_paid_cash":        amountPaidCash,
			"amount_credit_remaining": amountCreditRemaining,
		}).Error
}

func (r *transactionRepository) GetDue(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("user_id = ?", userID).
		Where("amount_credit_remaining > 0").
		Where("status IN ?", []enum.TransactionStatus{
			enum.TransactionStatusPendingPayment,
			enum.TransactionStatusPartialPayment,
		})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("transaction_at ASC").
		Preload("Customer").
		Find(&transactions).Error

	return transactions, total, err
}

type transactionProductRepository struct {
	db *gorm.DB
}

// NewTransactionProductRepository creates a new line item repository
func NewTransactionProductRepository(db *gorm.DB) domainRepo.TransactionProductRepository {
	return &transactionProductRepository{db: db}
}

func (r *transactionProductRepository) CreateBatch(ctx context.Context, products []entity.TransactionProduct) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *transactionProductRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionProduct, error) {
	var products []entity.TransactionProduct
	err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Where("transaction_id = ?", transactionID).
		Find(&products).Error
	return products, err
}

func (r *transactionProductRepository) DeleteByTransactionID(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TransactionProduct{}, "transaction_id = ?", transactionID).Error
}
