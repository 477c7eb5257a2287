package settlement

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPayment is returned when a proposed payment is negative or
	// exceeds the remaining bill total. Nothing is persisted.
	ErrInvalidPayment = errors.New("invalid payment amount")

	// ErrCreditNotAllowed is returned when a partial or zero payment is
	// attempted against a customer whose credit policy forbids it.
	ErrCreditNotAllowed = errors.New("customer is not allowed credit")

	// ErrRollbackFailed is returned when compensation after a failed
	// settlement step itself fails; the transaction needs manual
	// reconciliation.
	ErrRollbackFailed = errors.New("settlement rollback failed")

	// ErrSettlementInProgress is returned when a settlement is already
	// running for the transaction. Callers treat it as a no-op, not a
	// failure.
	ErrSettlementInProgress = errors.New("settlement already in progress")
)

// PaymentRangeError reports a proposed payment outside [0, maxAllowed].
type PaymentRangeError struct {
	Proposed   int64
	MaxAllowed int64
}

func (e *PaymentRangeError) Error() string {
	if e.Proposed < 0 {
		return "payment amount cannot be negative"
	}
	return fmt.Sprintf("payment of %.2f exceeds the maximum allowed %.2f",
		float64(e.Proposed)/100, float64(e.MaxAllowed)/100)
}

func (e *PaymentRangeError) Unwrap() error {
	return ErrInvalidPayment
}

// RollbackFailureError names the transaction left in an inconsistent state
// after a compensation attempt failed.
type RollbackFailureError struct {
	TransactionID uuid.UUID
	StepErr       error
	RollbackErr   error
}

func (e *RollbackFailureError) Error() string {
	return fmt.Sprintf("transaction %s: settlement failed (%v) and rollback also failed (%v); manual reconciliation required",
		e.TransactionID, e.StepErr, e.RollbackErr)
}

func (e *RollbackFailureError) Unwrap() error {
	return ErrRollbackFailed
}
