package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settledSale(lines ...entity.TransactionProduct) *entity.Transaction {
	tx := &entity.Transaction{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: enum.TransactionStatusSettled,
	}
	for i := range lines {
		lines[i].TransactionID = tx.ID
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
	}
	tx.Products = lines
	return tx
}

func TestCreateRefundPartialQuantity(t *testing.T) {
	// 5 units at 10.00 with 10% VAT; 2 come back.
	tx := settledSale(entity.TransactionProduct{
		ProductID:     uuid.New(),
		Quantity:      5,
		SellingPrice:  1000,
		VatPercentage: decimal.NewFromInt(10),
	})
	txRepo := newFakeTransactionRepo(tx)
	refundRepo := newFakeRefundRepo()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewRefundService(refundRepo, txRepo, clock.Fixed(now))

	actingUser := uuid.New()
	refund, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         actingUser,
		Items: []RefundItemInput{
			{TransactionProductID: tx.Products[0].ID, Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2000), refund.TotalAmount)
	assert.Equal(t, int64(200), refund.TotalVat)
	assert.Equal(t, now, refund.RefundedAt)
	require.Len(t, refund.Items, 1)
	assert.Equal(t, 2, refund.Items[0].Quantity)
	assert.Equal(t, int64(1000), refund.Items[0].UnitPrice)

	// The sale moved to refunded status under the acting user.
	assert.Equal(t, enum.TransactionStatusRefunded, tx.Status)
	require.Len(t, txRepo.statusWrites, 1)
	assert.Equal(t, actingUser, txRepo.statusWrites[0].by)
}

func TestCreateRefundUsesRecordedPricesWithModifiers(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     3,
		SellingPrice: 1000,
		Modifiers: []entity.TransactionProductModifier{
			{Name: "Large", ExtraPrice: 200},
		},
	})
	svc := NewRefundService(newFakeRefundRepo(), newFakeTransactionRepo(tx), clock.System())

	refund, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: tx.Products[0].ID, Quantity: 3},
		},
	})

	require.NoError(t, err)
	// (10.00 + 2.00) × 3
	assert.Equal(t, int64(3600), refund.TotalAmount)
}

func TestCreateRefundRejectsOverRefund(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     5,
		SellingPrice: 1000,
	})
	svc := NewRefundService(newFakeRefundRepo(), newFakeTransactionRepo(tx), clock.System())

	_, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: tx.Products[0].ID, Quantity: 6},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds sold quantity")
}

func TestCreateRefundCountsPriorRefunds(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     5,
		SellingPrice: 1000,
	})
	lineID := tx.Products[0].ID
	refundRepo := newFakeRefundRepo()
	require.NoError(t, refundRepo.Create(context.Background(), &entity.RefundTransaction{
		SellingTransactionID: tx.ID,
		Items: []entity.RefundItem{
			{TransactionProductID: lineID, Quantity: 4},
		},
	}))
	svc := NewRefundService(refundRepo, newFakeTransactionRepo(tx), clock.System())

	_, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: lineID, Quantity: 2},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds sold quantity")
}

func TestCreateRefundRejectsUnsettledTransaction(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     1,
		SellingPrice: 1000,
	})
	tx.Status = enum.TransactionStatusBilled
	svc := NewRefundService(newFakeRefundRepo(), newFakeTransactionRepo(tx), clock.System())

	_, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: tx.Products[0].ID, Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settled")
}

func TestCreateRefundRejectsForeignLine(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     1,
		SellingPrice: 1000,
	})
	svc := NewRefundService(newFakeRefundRepo(), newFakeTransactionRepo(tx), clock.System())

	_, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: uuid.New(), Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}

func TestCreateRefundRejectsDuplicateLines(t *testing.T) {
	tx := settledSale(entity.TransactionProduct{
		ProductID:    uuid.New(),
		Quantity:     4,
		SellingPrice: 1000,
	})
	lineID := tx.Products[0].ID
	svc := NewRefundService(newFakeRefundRepo(), newFakeTransactionRepo(tx), clock.System())

	_, err := svc.CreateRefund(context.Background(), &CreateRefundInput{
		SellingTransactionID: tx.ID,
		ActingUserID:         uuid.New(),
		Items: []RefundItemInput{
			{TransactionProductID: lineID, Quantity: 1},
			{TransactionProductID: lineID, Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate")
}
