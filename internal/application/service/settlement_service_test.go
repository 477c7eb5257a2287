package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billedTransaction(total int64, customerID *uuid.UUID) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		CustomerID:  customerID,
		InvoiceNo:   "INV-TEST",
		Status:      enum.TransactionStatusBilled,
		TotalAmount: total,
	}
}

func TestSettleTransactionFullPayment(t *testing.T) {
	tx := billedTransaction(10000, nil)
	txRepo := newFakeTransactionRepo(tx)
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), newFakeReservationRepo())

	outcome, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       100.00,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.TransactionStatusSettled, outcome.Transaction.Status)
	assert.Equal(t, 100.00, outcome.BillTotal)
	assert.Equal(t, 0.00, outcome.CreditRemaining)
	assert.Equal(t, int64(10000), tx.AmountPaidCash)
	assert.Equal(t, int64(0), tx.AmountCreditRemaining)
}

func TestSettleTransactionPartialPaymentWithDues(t *testing.T) {
	customer := &entity.Customer{
		ID:            uuid.New(),
		Name:          "Jane",
		BalanceAmount: 2000,
		CreditAllowed: true,
	}
	tx := billedTransaction(10000, &customer.ID)
	txRepo := newFakeTransactionRepo(tx)
	customerRepo := newFakeCustomerRepo(customer)
	svc := NewSettlementService(txRepo, customerRepo, newFakeReservationRepo())

	outcome, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       60.00,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.TransactionStatusPartialPayment, outcome.Transaction.Status)
	assert.Equal(t, 120.00, outcome.BillTotal)
	assert.Equal(t, 60.00, outcome.CreditRemaining)
	assert.Equal(t, 60.00, outcome.CustomerBalance)
	assert.Equal(t, int64(6000), customer.BalanceAmount)
}

func TestSettleTransactionCreditNotAllowed(t *testing.T) {
	customer := &entity.Customer{
		ID:            uuid.New(),
		Name:          "Jane",
		BalanceAmount: 2000,
		CreditAllowed: false,
	}
	tx := billedTransaction(10000, &customer.ID)
	txRepo := newFakeTransactionRepo(tx)
	customerRepo := newFakeCustomerRepo(customer)
	svc := NewSettlementService(txRepo, customerRepo, newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       60.00,
	})

	assert.ErrorIs(t, err, settlement.ErrCreditNotAllowed)
	// Nothing was persisted.
	assert.Empty(t, txRepo.paymentWrites)
	assert.Empty(t, txRepo.statusWrites)
	assert.Empty(t, customerRepo.balanceWrites)
	assert.Equal(t, int64(2000), customer.BalanceAmount)
}

func TestSettleTransactionInvalidPayment(t *testing.T) {
	tx := billedTransaction(10000, nil)
	txRepo := newFakeTransactionRepo(tx)
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       100.01,
	})

	assert.ErrorIs(t, err, settlement.ErrInvalidPayment)
	assert.Empty(t, txRepo.paymentWrites)
}

func TestSettleTransactionCompletesReservation(t *testing.T) {
	reservation := &entity.Reservation{ID: uuid.New()}
	tx := billedTransaction(5000, nil)
	tx.ReservationID = &reservation.ID
	txRepo := newFakeTransactionRepo(tx)
	reservationRepo := newFakeReservationRepo(reservation)
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), reservationRepo)

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       50.00,
	})

	require.NoError(t, err)
	assert.True(t, reservation.IsCompleted)
}

func TestSettleTransactionReservationLeftOpenOnPartial(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), CreditAllowed: true}
	reservation := &entity.Reservation{ID: uuid.New()}
	tx := billedTransaction(5000, &customer.ID)
	tx.ReservationID = &reservation.ID
	txRepo := newFakeTransactionRepo(tx)
	reservationRepo := newFakeReservationRepo(reservation)
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(customer), reservationRepo)

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       20.00,
	})

	require.NoError(t, err)
	assert.False(t, reservation.IsCompleted)
}

func TestSettleTransactionRejectsTerminalStatus(t *testing.T) {
	tx := billedTransaction(10000, nil)
	tx.Status = enum.TransactionStatusCancelled
	txRepo := newFakeTransactionRepo(tx)
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       100.00,
	})

	var transitionErr *enum.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Empty(t, txRepo.paymentWrites)
}

func TestSettleTransactionRollsBackOnStatusFailure(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), BalanceAmount: 2000, CreditAllowed: true}
	tx := billedTransaction(10000, &customer.ID)
	tx.AmountPaidCash = 0
	tx.AmountCreditRemaining = 0
	txRepo := newFakeTransactionRepo(tx)
	txRepo.updateStatusHook = func(call int) error {
		return errors.New("status write failed")
	}
	customerRepo := newFakeCustomerRepo(customer)
	svc := NewSettlementService(txRepo, customerRepo, newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       60.00,
	})

	require.EqualError(t, err, "status write failed")
	// The payment write happened and was then compensated back to zero.
	require.Len(t, txRepo.paymentWrites, 2)
	assert.Equal(t, int64(6000), txRepo.paymentWrites[0].paidCash)
	assert.Equal(t, int64(0), txRepo.paymentWrites[1].paidCash)
	assert.Equal(t, int64(0), tx.AmountPaidCash)
	assert.Equal(t, int64(0), tx.AmountCreditRemaining)
	// The balance write never happened.
	assert.Empty(t, customerRepo.balanceWrites)
	assert.Equal(t, int64(2000), customer.BalanceAmount)
}

func TestSettleTransactionRollsBackOnBalanceFailure(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), BalanceAmount: 2000, CreditAllowed: true}
	tx := billedTransaction(10000, &customer.ID)
	txRepo := newFakeTransactionRepo(tx)
	customerRepo := newFakeCustomerRepo(customer)
	customerRepo.updateBalanceHook = func(call int) error {
		return errors.New("balance write failed")
	}
	svc := NewSettlementService(txRepo, customerRepo, newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       60.00,
	})

	require.EqualError(t, err, "balance write failed")
	// Payment and status both compensated, in reverse order.
	require.Len(t, txRepo.paymentWrites, 2)
	require.Len(t, txRepo.statusWrites, 2)
	assert.Equal(t, enum.TransactionStatusPartialPayment, txRepo.statusWrites[0].status)
	assert.Equal(t, enum.TransactionStatusBilled, txRepo.statusWrites[1].status)
	assert.Equal(t, enum.TransactionStatusBilled, tx.Status)
	assert.Equal(t, int64(0), tx.AmountPaidCash)
	assert.Equal(t, int64(2000), customer.BalanceAmount)
}

func TestSettleTransactionRollbackFailure(t *testing.T) {
	tx := billedTransaction(10000, nil)
	txRepo := newFakeTransactionRepo(tx)
	txRepo.updateStatusHook = func(call int) error {
		return errors.New("status write failed")
	}
	// The compensating payment write is the second call.
	txRepo.updatePaymentHook = func(call int) error {
		if call == 2 {
			return errors.New("compensation failed")
		}
		return nil
	}
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), newFakeReservationRepo())

	_, err := svc.SettleTransaction(context.Background(), &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       100.00,
	})

	assert.ErrorIs(t, err, settlement.ErrRollbackFailed)

	var rollbackErr *settlement.RollbackFailureError
	require.ErrorAs(t, err, &rollbackErr)
	assert.Equal(t, tx.ID, rollbackErr.TransactionID)
	assert.EqualError(t, rollbackErr.StepErr, "status write failed")
	assert.EqualError(t, rollbackErr.RollbackErr, "compensation failed")
}

func TestSettleTransactionDuplicateInvocation(t *testing.T) {
	tx := billedTransaction(10000, nil)
	txRepo := newFakeTransactionRepo(tx)

	release := make(chan struct{})
	firstInside := make(chan struct{})
	var once sync.Once
	txRepo.updatePaymentHook = func(call int) error {
		once.Do(func() {
			close(firstInside)
			<-release
		})
		return nil
	}
	svc := NewSettlementService(txRepo, newFakeCustomerRepo(), newFakeReservationRepo())

	input := &SettleInput{
		TransactionID: tx.ID,
		ActingUserID:  uuid.New(),
		Payment:       100.00,
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.SettleTransaction(context.Background(), input)
		done <- err
	}()

	<-firstInside
	_, err := svc.SettleTransaction(context.Background(), input)
	assert.ErrorIs(t, err, settlement.ErrSettlementInProgress)

	close(release)
	require.NoError(t, <-done)

	// After release the guard is cleared but the transaction is settled, so a
	// retry fails on the transition rather than the guard.
	_, err = svc.SettleTransaction(context.Background(), input)
	var transitionErr *enum.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}
