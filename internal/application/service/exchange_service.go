package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/sellhub/pos-api/pkg/clock"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// ExchangeService processes exchanges against settled sales: returned lines
// are valued at their recorded unit prices, new lines at current catalog
// prices, and the signed difference is what the customer still pays (positive)
// or gets back (negative).
type ExchangeService struct {
	exchangeRepo    repository.ExchangeRepository
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	clock           clock.Clock
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	exchangeRepo repository.ExchangeRepository,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	clk clock.Clock,
) *ExchangeService {
	return &ExchangeService{
		exchangeRepo:    exchangeRepo,
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		clock:           clk,
	}
}

// ReturnItemInput identifies an original line and how many units come back
type ReturnItemInput struct {
	TransactionProductID uuid.UUID
	Quantity             int
}

// NewItemInput represents a replacement item priced from the catalog
type NewItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateExchangeInput represents the exchange request
type CreateExchangeInput struct {
	SellingTransactionID uuid.UUID
	ActingUserID         uuid.UUID
	ReturnedItems        []ReturnItemInput
	NewItems             []NewItemInput
}

// CreateExchange validates and records an exchange. The sale moves to
// exchanged status.
func (s *ExchangeService) CreateExchange(ctx context.Context, input *CreateExchangeInput) (*entity.ExchangeTransaction, error) {
	if len(input.ReturnedItems) == 0 {
		return nil, apperror.NewBadRequestError("At least one returned item is required")
	}
	if len(input.NewItems) == 0 {
		return nil, apperror.NewBadRequestError("At least one new item is required")
	}

	tx, err := s.transactionRepo.GetWithProducts(ctx, input.SellingTransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status != enum.TransactionStatusSettled {
		return nil, apperror.NewUnprocessableError("Only settled transactions can be exchanged")
	}

	lineMap := make(map[uuid.UUID]*entity.TransactionProduct, len(tx.Products))
	for i := range tx.Products {
		lineMap[tx.Products[i].ID] = &tx.Products[i]
	}

	exchange := &entity.ExchangeTransaction{
		SellingTransactionID: tx.ID,
		UserID:               input.ActingUserID,
		ExchangedAt:          s.clock.Now(),
	}

	seen := make(map[uuid.UUID]bool, len(input.ReturnedItems))
	for _, item := range input.ReturnedItems {
		line, exists := lineMap[item.TransactionProductID]
		if !exists {
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Line %s does not belong to this transaction", item.TransactionProductID))
		}
		if seen[item.TransactionProductID] {
			return nil, apperror.NewBadRequestError("Duplicate line in exchange request")
		}
		seen[item.TransactionProductID] = true

		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Return quantity must be positive")
		}
		if item.Quantity > line.Quantity {
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Return quantity exceeds sold quantity for line %s", line.ID))
		}

		lineID := line.ID
		unitPrice := line.UnitPrice()
		amount := unitPrice * int64(item.Quantity)
		exchange.Items = append(exchange.Items, entity.ExchangeItem{
			TransactionProductID: &lineID,
			ProductID:            line.ProductID,
			IsReturn:             true,
			Quantity:             item.Quantity,
			UnitPrice:            unitPrice,
			Amount:               amount,
		})
		exchange.TotalReturnAmount += amount
	}

	newProductIDs := make([]uuid.UUID, len(input.NewItems))
	for i, item := range input.NewItems {
		newProductIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, newProductIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	for _, item := range input.NewItems {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for product %s", product.Name))
		}

		amount := product.SellingPrice * int64(item.Quantity)
		exchange.Items = append(exchange.Items, entity.ExchangeItem{
			ProductID: product.ID,
			IsReturn:  false,
			Quantity:  item.Quantity,
			UnitPrice: product.SellingPrice,
			Amount:    amount,
		})
		exchange.TotalNewAmount += amount
	}

	exchange.TotalExchangedAmount = exchange.TotalNewAmount - exchange.TotalReturnAmount

	if err := enum.ValidateTransition(tx.Status, enum.TransactionStatusExchanged); err != nil {
		return nil, err
	}

	if err := s.exchangeRepo.Create(ctx, exchange); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, enum.TransactionStatusExchanged, input.ActingUserID); err != nil {
		return nil, err
	}

	return exchange, nil
}

// GetExchange retrieves an exchange with its items
func (s *ExchangeService) GetExchange(ctx context.Context, id uuid.UUID) (*entity.ExchangeTransaction, error) {
	exchange, err := s.exchangeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperror.NewNotFoundError("Exchange")
	}
	return exchange, nil
}

// ListExchanges lists exchanges for a user
func (s *ExchangeService) ListExchanges(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ExchangeTransaction], error) {
	exchanges, total, err := s.exchangeRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(exchanges, pag), nil
}
