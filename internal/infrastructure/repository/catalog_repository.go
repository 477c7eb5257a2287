package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	domainRepo "github.com/sellhub/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Discount, error) {
	var discounts []entity.Discount
	if len(ids) == 0 {
		return discounts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&discounts).Error
	return discounts, err
}

func (r *discountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Discount{}, "id = ?", id).Error
}

func (r *discountRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error) {
	var discounts []entity.Discount
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority ASC").
		Find(&discounts).Error
	return discounts, err
}

func (r *discountRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error) {
	var discounts []entity.Discount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority ASC").
		Find(&discounts).Error
	return discounts, err
}

type taxTypeRepository struct {
	db *gorm.DB
}

// NewTaxTypeRepository creates a new tax type repository
func NewTaxTypeRepository(db *gorm.DB) domainRepo.TaxTypeRepository {
	return &taxTypeRepository{db: db}
}

func (r *taxTypeRepository) Create(ctx context.Context, tax *entity.TaxType) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *taxTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxType, error) {
	var tax entity.TaxType
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxTypeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TaxType, error) {
	var taxes []entity.TaxType
	if len(ids) == 0 {
		return taxes, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&taxes).Error
	return taxes, err
}

func (r *taxTypeRepository) Update(ctx context.Context, tax *entity.TaxType) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

func (r *taxTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxType{}, "id = ?", id).Error
}

func (r *taxTypeRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error) {
	var taxes []entity.TaxType
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculation_order ASC").
		Find(&taxes).Error
	return taxes, err
}

func (r *taxTypeRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error) {
	var taxes []entity.TaxType
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("calculation_order ASC").
		Find(&taxes).Error
	return taxes, err
}
