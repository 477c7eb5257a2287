// Package settlement derives payment amounts and the resulting transaction
// status for a settlement pass. The calculator is pure; persistence and the
// compensation sequence live in the application layer.
package settlement

import "github.com/sellhub/pos-api/internal/domain/enum"

// Input carries everything the calculator needs for one settlement pass.
// All money values are in cents.
type Input struct {
	// TransactionTotal is the transaction's own total (line-derived).
	TransactionTotal int64
	// AlreadyPaid is the amount previously recorded against this transaction.
	AlreadyPaid int64
	// CustomerBalance is the customer's current ledger value, 0 if the sale
	// has no customer.
	CustomerBalance int64
	// ProposedPayment is the payment being applied now.
	ProposedPayment int64
	// CreditAllowed is the customer's credit policy flag.
	CreditAllowed bool
	// CurrentStatus is the transaction's status before this pass.
	CurrentStatus enum.TransactionStatus
}

// Result is the outcome of a settlement pass.
type Result struct {
	BillTotal          int64
	TotalPaid          int64
	CreditRemaining    int64
	NextStatus         enum.TransactionStatus
	NewCustomerBalance int64
}

// Calculate derives the bill total, remaining credit and next status for a
// proposed payment.
//
// When the transaction is already in partial payment, its own total has been
// folded into the customer's running balance on the prior pass, so the bill
// total is the customer balance alone. Otherwise the bill total is the
// transaction total plus the standing balance.
func Calculate(in Input) (Result, error) {
	billTotal := in.TransactionTotal + in.CustomerBalance
	paidTowardBill := in.AlreadyPaid
	if in.CurrentStatus == enum.TransactionStatusPartialPayment {
		// Prior payments were applied to the previous pass's bill, not to the
		// folded balance being settled now.
		billTotal = in.CustomerBalance
		paidTowardBill = 0
	}

	maxAllowed := billTotal - paidTowardBill
	if in.ProposedPayment < 0 || in.ProposedPayment > maxAllowed {
		return Result{}, &PaymentRangeError{Proposed: in.ProposedPayment, MaxAllowed: maxAllowed}
	}

	paidTowardBill += in.ProposedPayment

	result := Result{
		BillTotal:       billTotal,
		TotalPaid:       in.AlreadyPaid + in.ProposedPayment,
		CreditRemaining: billTotal - paidTowardBill,
	}

	switch {
	case paidTowardBill >= billTotal:
		result.NextStatus = enum.TransactionStatusSettled
		result.CreditRemaining = 0
	case paidTowardBill > 0:
		if !in.CreditAllowed {
			return Result{}, ErrCreditNotAllowed
		}
		result.NextStatus = enum.TransactionStatusPartialPayment
	default:
		if !in.CreditAllowed {
			return Result{}, ErrCreditNotAllowed
		}
		result.NextStatus = enum.TransactionStatusPendingPayment
	}

	if result.NextStatus == enum.TransactionStatusSettled {
		result.NewCustomerBalance = 0
	} else {
		result.NewCustomerBalance = result.CreditRemaining
	}
	return result, nil
}
