package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/pricing"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/sellhub/pos-api/pkg/clock"
	"github.com/sellhub/pos-api/pkg/pagination"
	"github.com/sellhub/pos-api/pkg/utils"
)

// TransactionService handles the transaction lifecycle up to settlement:
// draft creation, line edits with explicit totals recomputation, billing,
// hold and cancellation.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	lineRepo        repository.TransactionProductRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	discountRepo    repository.DiscountRepository
	taxRepo         repository.TaxTypeRepository
	clock           clock.Clock
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	lineRepo repository.TransactionProductRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	discountRepo repository.DiscountRepository,
	taxRepo repository.TaxTypeRepository,
	clk clock.Clock,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		lineRepo:        lineRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		discountRepo:    discountRepo,
		taxRepo:         taxRepo,
		clock:           clk,
	}
}

// LineModifierInput represents an add-on applied to a line item
type LineModifierInput struct {
	Name       string
	ExtraPrice float64
}

// LineItemInput represents an item in a transaction
type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Modifiers []LineModifierInput
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	TableID       *uuid.UUID
	ReservationID *uuid.UUID
	CreditDays    int
	Items         []LineItemInput
	DiscountIDs   []uuid.UUID
	TaxTypeIDs    []uuid.UUID
}

// buildLines resolves products and assembles line items with the selling
// price and VAT rate captured at sale time.
func (s *TransactionService) buildLines(ctx context.Context, items []LineItemInput) ([]entity.TransactionProduct, error) {
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("At least one item is required")
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lines := make([]entity.TransactionProduct, 0, len(items))
	for _, item := range items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for product %s", product.Name))
		}

		line := entity.TransactionProduct{
			ProductID:     product.ID,
			Quantity:      item.Quantity,
			SellingPrice:  product.SellingPrice,
			VatPercentage: product.VatPercentage,
		}
		for _, mod := range item.Modifiers {
			line.Modifiers = append(line.Modifiers, entity.TransactionProductModifier{
				Name:       mod.Name,
				ExtraPrice: toCents(mod.ExtraPrice),
			})
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// resolveSelections loads the chosen discounts and taxes, rejecting inactive
// or expired discounts.
func (s *TransactionService) resolveSelections(ctx context.Context, discountIDs, taxIDs []uuid.UUID) ([]entity.Discount, []entity.TaxType, error) {
	var discounts []entity.Discount
	if len(discountIDs) > 0 {
		found, err := s.discountRepo.GetByIDs(ctx, discountIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(found) != len(discountIDs) {
			return nil, nil, apperror.NewNotFoundError("Discount")
		}
		now := s.clock.Now()
		for i := range found {
			if !found[i].ActiveAt(now) {
				return nil, nil, apperror.NewUnprocessableError(fmt.Sprintf("Discount %q is not active", found[i].Name))
			}
		}
		discounts = found
	}

	var taxes []entity.TaxType
	if len(taxIDs) > 0 {
		found, err := s.taxRepo.GetByIDs(ctx, taxIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(found) != len(taxIDs) {
			return nil, nil, apperror.NewNotFoundError("Tax type")
		}
		taxes = found
	}
	return discounts, taxes, nil
}

// CreateTransaction creates a draft transaction with totals derived from the
// cart lines and the user-selected discounts and taxes.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if input.CreditDays < 0 {
		return nil, apperror.NewBadRequestError("Credit days cannot be negative")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	lines, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	discounts, taxes, err := s.resolveSelections(ctx, input.DiscountIDs, input.TaxTypeIDs)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(lines, discounts, taxes)

	tx := &entity.Transaction{
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		TableID:       input.TableID,
		ReservationID: input.ReservationID,
		InvoiceNo:     utils.GenerateInvoiceNo("INV"),
		Status:        enum.TransactionStatusDraft,
		TransactionAt: s.clock.Now(),
		TotalAmount:   totals.Total,
		TotalVat:      totals.TotalVat,
		TotalDiscount: totals.TotalDiscount,
		CreditDays:    input.CreditDays,
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].TransactionID = tx.ID
	}
	if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
		// Compensate the half-created sale so a retry starts clean.
		_ = s.transactionRepo.Delete(ctx, tx.ID)
		return nil, err
	}

	return s.transactionRepo.GetWithProducts(ctx, tx.ID)
}

// UpdateTransactionInput represents the update transaction input
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Items         []LineItemInput
	DiscountIDs   []uuid.UUID
	TaxTypeIDs    []uuid.UUID
}

// UpdateTransaction replaces a draft or held transaction's lines and
// recomputes its totals.
func (s *TransactionService) UpdateTransaction(ctx context.Context, input *UpdateTransactionInput) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status != enum.TransactionStatusDraft && tx.Status != enum.TransactionStatusHold {
		return nil, apperror.NewUnprocessableError("Only draft or held transactions can be edited")
	}

	lines, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	discounts, taxes, err := s.resolveSelections(ctx, input.DiscountIDs, input.TaxTypeIDs)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(lines, discounts, taxes)

	if err := s.lineRepo.DeleteByTransactionID(ctx, tx.ID); err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].TransactionID = tx.ID
	}
	if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
		return nil, err
	}

	tx.TotalAmount = totals.Total
	tx.TotalVat = totals.TotalVat
	tx.TotalDiscount = totals.TotalDiscount
	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return s.transactionRepo.GetWithProducts(ctx, tx.ID)
}

// changeStatus validates the requested edge and records the transition.
func (s *TransactionService) changeStatus(ctx context.Context, actingUserID, transactionID uuid.UUID, target enum.TransactionStatus) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if err := enum.ValidateTransition(tx.Status, target); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.UpdateStatus(ctx, transactionID, target, actingUserID); err != nil {
		return nil, err
	}
	tx.Status = target
	return tx, nil
}

// BillTransaction marks a draft ready to collect payment. No monetary change.
func (s *TransactionService) BillTransaction(ctx context.Context, actingUserID, transactionID uuid.UUID) (*entity.Transaction, error) {
	return s.changeStatus(ctx, actingUserID, transactionID, enum.TransactionStatusBilled)
}

// HoldTransaction parks a sale to be resumed later.
func (s *TransactionService) HoldTransaction(ctx context.Context, actingUserID, transactionID uuid.UUID) (*entity.Transaction, error) {
	return s.changeStatus(ctx, actingUserID, transactionID, enum.TransactionStatusHold)
}

// CancelTransaction cancels any non-terminal transaction. Cancellation
// cannot be reversed.
func (s *TransactionService) CancelTransaction(ctx context.Context, actingUserID, transactionID uuid.UUID) (*entity.Transaction, error) {
	return s.changeStatus(ctx, actingUserID, transactionID, enum.TransactionStatusCancelled)
}

// GetTransaction retrieves a transaction with its lines
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// GetDueTransactions returns transactions with outstanding credit
func (s *TransactionService) GetDueTransactions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.GetDue(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}
