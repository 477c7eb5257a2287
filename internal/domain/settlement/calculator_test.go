package settlement_test

import (
	"errors"
	"testing"

	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFullPayment(t *testing.T) {
	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      0,
		CustomerBalance:  0,
		ProposedPayment:  10000,
		CreditAllowed:    false,
		CurrentStatus:    enum.TransactionStatusBilled,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.BillTotal)
	assert.Equal(t, int64(10000), result.TotalPaid)
	assert.Equal(t, int64(0), result.CreditRemaining)
	assert.Equal(t, enum.TransactionStatusSettled, result.NextStatus)
	assert.Equal(t, int64(0), result.NewCustomerBalance)
}

func TestCalculatePartialPaymentWithStandingBalance(t *testing.T) {
	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      0,
		CustomerBalance:  2000,
		ProposedPayment:  6000,
		CreditAllowed:    true,
		CurrentStatus:    enum.TransactionStatusBilled,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12000), result.BillTotal)
	assert.Equal(t, int64(6000), result.TotalPaid)
	assert.Equal(t, int64(6000), result.CreditRemaining)
	assert.Equal(t, enum.TransactionStatusPartialPayment, result.NextStatus)
	assert.Equal(t, int64(6000), result.NewCustomerBalance)
}

func TestCalculateCreditNotAllowed(t *testing.T) {
	_, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      0,
		CustomerBalance:  2000,
		ProposedPayment:  6000,
		CreditAllowed:    false,
		CurrentStatus:    enum.TransactionStatusBilled,
	})

	assert.ErrorIs(t, err, settlement.ErrCreditNotAllowed)
}

func TestCalculateZeroPaymentGoesPending(t *testing.T) {
	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 5000,
		ProposedPayment:  0,
		CreditAllowed:    true,
		CurrentStatus:    enum.TransactionStatusBilled,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.TransactionStatusPendingPayment, result.NextStatus)
	assert.Equal(t, int64(5000), result.CreditRemaining)
	assert.Equal(t, int64(5000), result.NewCustomerBalance)
}

func TestCalculateZeroPaymentCreditNotAllowed(t *testing.T) {
	_, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 5000,
		ProposedPayment:  0,
		CreditAllowed:    false,
		CurrentStatus:    enum.TransactionStatusBilled,
	})

	assert.ErrorIs(t, err, settlement.ErrCreditNotAllowed)
}

func TestCalculatePaymentBounds(t *testing.T) {
	tests := []struct {
		name     string
		proposed int64
	}{
		{"negative payment", -1},
		{"payment above bill total", 10001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := settlement.Calculate(settlement.Input{
				TransactionTotal: 10000,
				ProposedPayment:  tt.proposed,
				CreditAllowed:    true,
				CurrentStatus:    enum.TransactionStatusBilled,
			})

			assert.ErrorIs(t, err, settlement.ErrInvalidPayment)

			var rangeErr *settlement.PaymentRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.proposed, rangeErr.Proposed)
		})
	}
}

func TestCalculateResettlePartialPayment(t *testing.T) {
	// After scenario B the transaction total is folded into the customer
	// balance, so the second pass bills the balance alone.
	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      6000,
		CustomerBalance:  6000,
		ProposedPayment:  6000,
		CreditAllowed:    true,
		CurrentStatus:    enum.TransactionStatusPartialPayment,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6000), result.BillTotal)
	assert.Equal(t, int64(12000), result.TotalPaid)
	assert.Equal(t, int64(0), result.CreditRemaining)
	assert.Equal(t, enum.TransactionStatusSettled, result.NextStatus)
	assert.Equal(t, int64(0), result.NewCustomerBalance)
}

func TestCalculateResettlePartialPaymentAgainPartial(t *testing.T) {
	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      6000,
		CustomerBalance:  6000,
		ProposedPayment:  2500,
		CreditAllowed:    true,
		CurrentStatus:    enum.TransactionStatusPartialPayment,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6000), result.BillTotal)
	assert.Equal(t, int64(3500), result.CreditRemaining)
	assert.Equal(t, enum.TransactionStatusPartialPayment, result.NextStatus)
	assert.Equal(t, int64(3500), result.NewCustomerBalance)
}

func TestCalculateOverpaymentOnResettleRejected(t *testing.T) {
	_, err := settlement.Calculate(settlement.Input{
		TransactionTotal: 10000,
		AlreadyPaid:      6000,
		CustomerBalance:  6000,
		ProposedPayment:  6001,
		CreditAllowed:    true,
		CurrentStatus:    enum.TransactionStatusPartialPayment,
	})

	assert.ErrorIs(t, err, settlement.ErrInvalidPayment)
}
