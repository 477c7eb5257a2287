package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// TaxService manages configurable tax types
type TaxService struct {
	taxRepo repository.TaxTypeRepository
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo repository.TaxTypeRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// TaxInput represents the create or update tax type input
type TaxInput struct {
	UserID           uuid.UUID
	Name             string
	Value            decimal.Decimal
	IsPercentage     bool
	CalculationOrder int
	AppliesToSelling bool
	IsActive         bool
}

func validateTaxInput(input *TaxInput) error {
	if input.Name == "" {
		return apperror.NewBadRequestError("Tax name is required")
	}
	if input.Value.IsNegative() {
		return apperror.NewBadRequestError("Tax value cannot be negative")
	}
	if input.IsPercentage && input.Value.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewBadRequestError("Percentage tax cannot exceed 100")
	}
	return nil
}

func applyTaxInput(tax *entity.TaxType, input *TaxInput) {
	tax.Name = input.Name
	tax.Value = input.Value
	tax.IsPercentage = input.IsPercentage
	tax.CalculationOrder = input.CalculationOrder
	tax.AppliesToSelling = input.AppliesToSelling
	tax.IsActive = input.IsActive
}

// CreateTax creates a tax type
func (s *TaxService) CreateTax(ctx context.Context, input *TaxInput) (*entity.TaxType, error) {
	if err := validateTaxInput(input); err != nil {
		return nil, err
	}

	tax := &entity.TaxType{UserID: input.UserID}
	applyTaxInput(tax, input)

	if err := s.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// UpdateTax updates an existing tax type
func (s *TaxService) UpdateTax(ctx context.Context, id uuid.UUID, input *TaxInput) (*entity.TaxType, error) {
	if err := validateTaxInput(input); err != nil {
		return nil, err
	}

	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax type")
	}

	applyTaxInput(tax, input)

	if err := s.taxRepo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// GetTax retrieves a tax type by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*entity.TaxType, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax type")
	}
	return tax, nil
}

// ListTaxes lists all tax types for a user
func (s *TaxService) ListTaxes(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error) {
	return s.taxRepo.ListAll(ctx, userID)
}

// DeleteTax removes a tax type
func (s *TaxService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tax == nil {
		return apperror.NewNotFoundError("Tax type")
	}
	return s.taxRepo.Delete(ctx, id)
}
