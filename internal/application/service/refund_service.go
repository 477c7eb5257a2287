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
)

// RefundService processes line-level refunds against settled sales. Refund
// amounts are always derived from the unit prices and VAT rates recorded on
// the original transaction, never from current catalog prices.
type RefundService struct {
	refundRepo      repository.RefundRepository
	transactionRepo repository.TransactionRepository
	clock           clock.Clock
}

// NewRefundService creates a new refund service
func NewRefundService(
	refundRepo repository.RefundRepository,
	transactionRepo repository.TransactionRepository,
	clk clock.Clock,
) *RefundService {
	return &RefundService{
		refundRepo:      refundRepo,
		transactionRepo: transactionRepo,
		clock:           clk,
	}
}

// RefundItemInput identifies an original line and how many units come back
type RefundItemInput struct {
	TransactionProductID uuid.UUID
	Quantity             int
}

// CreateRefundInput represents the refund request
type CreateRefundInput struct {
	SellingTransactionID uuid.UUID
	ActingUserID         uuid.UUID
	Items                []RefundItemInput
}

// refundedQuantities sums previously refunded units per original line so a
// line can never be refunded beyond what was sold.
func (s *RefundService) refundedQuantities(ctx context.Context, sellingTransactionID uuid.UUID) (map[uuid.UUID]int, error) {
	previous, err := s.refundRepo.GetBySellingTransactionID(ctx, sellingTransactionID)
	if err != nil {
		return nil, err
	}
	refunded := make(map[uuid.UUID]int)
	for i := range previous {
		for _, item := range previous[i].Items {
			refunded[item.TransactionProductID] += item.Quantity
		}
	}
	return refunded, nil
}

// CreateRefund validates the requested lines against the settled sale and
// records the refund. The sale moves to refunded status.
func (s *RefundService) CreateRefund(ctx context.Context, input *CreateRefundInput) (*entity.RefundTransaction, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one item is required")
	}

	tx, err := s.transactionRepo.GetWithProducts(ctx, input.SellingTransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status != enum.TransactionStatusSettled {
		return nil, apperror.NewUnprocessableError("Only settled transactions can be refunded")
	}

	lineMap := make(map[uuid.UUID]*entity.TransactionProduct, len(tx.Products))
	for i := range tx.Products {
		lineMap[tx.Products[i].ID] = &tx.Products[i]
	}

	refunded, err := s.refundedQuantities(ctx, tx.ID)
	if err != nil {
		return nil, err
	}

	refund := &entity.RefundTransaction{
		SellingTransactionID: tx.ID,
		UserID:               input.ActingUserID,
		RefundedAt:           s.clock.Now(),
	}

	seen := make(map[uuid.UUID]bool, len(input.Items))
	for _, item := range input.Items {
		line, exists := lineMap[item.TransactionProductID]
		if !exists {
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Line %s does not belong to this transaction", item.TransactionProductID))
		}
		if seen[item.TransactionProductID] {
			return nil, apperror.NewBadRequestError("Duplicate line in refund request")
		}
		seen[item.TransactionProductID] = true

		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Refund quantity must be positive")
		}
		if item.Quantity+refunded[line.ID] > line.Quantity {
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Refund quantity exceeds sold quantity for line %s", line.ID))
		}

		unitPrice := line.UnitPrice()
		amount := unitPrice * int64(item.Quantity)
		vatAmount := pricing.VatAmount(amount, line.VatPercentage)

		refund.Items = append(refund.Items, entity.RefundItem{
			TransactionProductID: line.ID,
			ProductID:            line.ProductID,
			Quantity:             item.Quantity,
			UnitPrice:            unitPrice,
			VatPercentage:        line.VatPercentage,
			Amount:               amount,
			VatAmount:            vatAmount,
		})
		refund.TotalAmount += amount
		refund.TotalVat += vatAmount
	}

	if err := enum.ValidateTransition(tx.Status, enum.TransactionStatusRefunded); err != nil {
		return nil, err
	}

	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, enum.TransactionStatusRefunded, input.ActingUserID); err != nil {
		return nil, err
	}

	return refund, nil
}

// GetRefund retrieves a refund with its items
func (s *RefundService) GetRefund(ctx context.Context, id uuid.UUID) (*entity.RefundTransaction, error) {
	refund, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NewNotFoundError("Refund")
	}
	return refund, nil
}

// ListRefunds lists refunds for a user
func (s *RefundService) ListRefunds(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.RefundTransaction], error) {
	refunds, total, err := s.refundRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(refunds, pag), nil
}
