package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/sellhub/pos-api/pkg/pagination"
	"github.com/sellhub/pos-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService manages the sellable catalog
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	Code          string
	SellingPrice  float64
	VatPercentage float64
	IsActive      bool
}

// CreateProduct creates a catalog product. A code is generated from the name
// when none is supplied.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.SellingPrice < 0 {
		return nil, apperror.NewBadRequestError("Selling price cannot be negative")
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode(input.Name)
	}

	product := &entity.Product{
		UserID:        input.UserID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Code:          code,
		SellingPrice:  toCents(input.SellingPrice),
		VatPercentage: decimal.NewFromFloat(input.VatPercentage),
		IsActive:      input.IsActive,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID            uuid.UUID
	CategoryID    *uuid.UUID
	Name          *string
	Code          *string
	SellingPrice  *float64
	VatPercentage *float64
	IsActive      *bool
}

// UpdateProduct applies a partial update to a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Code != nil {
		product.Code = *input.Code
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			return nil, apperror.NewBadRequestError("Selling price cannot be negative")
		}
		product.SellingPrice = toCents(*input.SellingPrice)
	}
	if input.VatPercentage != nil {
		product.VatPercentage = decimal.NewFromFloat(*input.VatPercentage)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with pagination and search
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
