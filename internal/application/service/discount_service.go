package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/pricing"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/sellhub/pos-api/pkg/clock"
	"github.com/shopspring/decimal"
)

// DiscountService manages discount definitions and the stackability rules
// around them.
type DiscountService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	clock        clock.Clock
}

// NewDiscountService creates a new discount service
func NewDiscountService(
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	clk clock.Clock,
) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		clock:        clk,
	}
}

// DiscountInput represents the create or update discount input
type DiscountInput struct {
	UserID            uuid.UUID
	Name              string
	Type              enum.DiscountType
	Value             decimal.Decimal
	MaxDiscountAmount *float64
	ApplicableOn      enum.DiscountScope
	ProductID         *uuid.UUID
	CategoryID        *uuid.UUID
	CustomerID        *uuid.UUID
	IsStackable       bool
	Priority          int
	StartDate         time.Time
	EndDate           time.Time
	UsageLimit        *int
	IsActive          bool
}

func validateDiscountInput(input *DiscountInput) error {
	if input.Name == "" {
		return apperror.NewBadRequestError("Discount name is required")
	}
	if input.Value.IsNegative() {
		return apperror.NewBadRequestError("Discount value cannot be negative")
	}
	if input.Type == enum.DiscountTypePercentage && input.Value.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewBadRequestError("Percentage discount cannot exceed 100")
	}
	if input.Type == enum.DiscountTypeFixed && input.MaxDiscountAmount != nil {
		return apperror.NewBadRequestError("Max discount amount applies to percentage discounts only")
	}
	if !input.EndDate.After(input.StartDate) {
		return apperror.NewBadRequestError("End date must be after start date")
	}

	switch input.ApplicableOn {
	case enum.DiscountScopeProduct:
		if input.ProductID == nil {
			return apperror.NewBadRequestError("Product is required for a product-scoped discount")
		}
	case enum.DiscountScopeCategory:
		if input.CategoryID == nil {
			return apperror.NewBadRequestError("Category is required for a category-scoped discount")
		}
	case enum.DiscountScopeCustomer:
		if input.CustomerID == nil {
			return apperror.NewBadRequestError("Customer is required for a customer-scoped discount")
		}
	}
	return nil
}

func applyDiscountInput(discount *entity.Discount, input *DiscountInput) {
	discount.Name = input.Name
	discount.Type = input.Type
	discount.Value = input.Value
	discount.MaxDiscountAmount = nil
	if input.MaxDiscountAmount != nil {
		v := toCents(*input.MaxDiscountAmount)
		discount.MaxDiscountAmount = &v
	}
	discount.ApplicableOn = input.ApplicableOn
	discount.ProductID = input.ProductID
	discount.CategoryID = input.CategoryID
	discount.CustomerID = input.CustomerID
	discount.IsStackable = input.IsStackable
	discount.Priority = input.Priority
	discount.StartDate = input.StartDate
	discount.EndDate = input.EndDate
	discount.UsageLimit = input.UsageLimit
	discount.IsActive = input.IsActive
}

// CreateDiscount creates a discount definition
func (s *DiscountService) CreateDiscount(ctx context.Context, input *DiscountInput) (*entity.Discount, error) {
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}

	discount := &entity.Discount{UserID: input.UserID}
	applyDiscountInput(discount, input)

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// UpdateDiscount updates an existing discount definition
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, input *DiscountInput) (*entity.Discount, error) {
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}

	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	applyDiscountInput(discount, input)

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// ListDiscounts lists all discount definitions for a user
func (s *DiscountService) ListDiscounts(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error) {
	return s.discountRepo.ListAll(ctx, userID)
}

// DeleteDiscount removes a discount definition
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return apperror.NewNotFoundError("Discount")
	}
	return s.discountRepo.Delete(ctx, id)
}

// EligibleProducts returns the active products that may receive the given
// discount. Products already covered by a different active non-stackable
// discount are excluded when the discount itself is non-stackable.
func (s *DiscountService) EligibleProducts(ctx context.Context, userID, discountID uuid.UUID) ([]entity.Product, error) {
	discount, err := s.discountRepo.GetByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	products, err := s.productRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.discountRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	return pricing.EligibleProducts(discount, products, existing, s.clock.Now()), nil
}
