package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	domainRepo "github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *gorm.DB) domainRepo.RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, refund *entity.RefundTransaction) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

func (r *refundRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RefundTransaction, error) {
	var refund entity.RefundTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&refund, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &refund, err
}

func (r *refundRepository) GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.RefundTransaction, error) {
	var refunds []entity.RefundTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("selling_transaction_id = ?", sellingTransactionID).
		Find(&refunds).Error
	return refunds, err
}

func (r *refundRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.RefundTransaction, int64, error) {
	var refunds []entity.RefundTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RefundTransaction{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Preload("Items").
		Find(&refunds).Error

	return refunds, total, err
}

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates a new exchange repository
func NewExchangeRepository(db *gorm.DB) domainRepo.ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(ctx context.Context, exchange *entity.ExchangeTransaction) error {
	return r.db.WithContext(ctx).Create(exchange).Error
}

func (r *exchangeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeTransaction, error) {
	var exchange entity.ExchangeTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&exchange, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &exchange, err
}

func (r *exchangeRepository) GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.ExchangeTransaction, error) {
	var exchanges []entity.ExchangeTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("selling_transaction_id = ?", sellingTransactionID).
		Find(&exchanges).Error
	return exchanges, err
}

func (r *exchangeRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.ExchangeTransaction, int64, error) {
	var exchanges []entity.ExchangeTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ExchangeTransaction{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Preload("Items").
		Find(&exchanges).Error

	return exchanges, total, err
}
