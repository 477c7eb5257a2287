package enum

import "fmt"

// settlementTargets are the statuses a payable transaction can move to:
// the three settlement outcomes plus explicit cancellation.
var settlementTargets = []TransactionStatus{
	TransactionStatusSettled,
	TransactionStatusPendingPayment,
	TransactionStatusPartialPayment,
	TransactionStatusCancelled,
}

// allowedTransitions defines the valid status transitions. The key is the
// current status, the value the set of reachable target statuses. Cancelled,
// refunded and exchanged are terminal and have no entry.
var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusDraft: append([]TransactionStatus{
		TransactionStatusBilled,
		TransactionStatusHold,
	}, settlementTargets...),
	TransactionStatusBilled:         append([]TransactionStatus{TransactionStatusHold}, settlementTargets...),
	TransactionStatusHold:           settlementTargets,
	TransactionStatusPendingPayment: settlementTargets,
	TransactionStatusPartialPayment: settlementTargets,
	TransactionStatusSettled: {
		TransactionStatusRefunded,
		TransactionStatusExchanged,
		TransactionStatusCancelled,
	},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to TransactionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError if the edge is not in
// the allowed set. The transaction must be left unchanged by callers on error.
func ValidateTransition(from, to TransactionStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// InvalidTransitionError reports a status change outside the allowed edge set.
type InvalidTransitionError struct {
	From TransactionStatus
	To   TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("transaction is %s and cannot change status", e.From)
	}
	return fmt.Sprintf("cannot change transaction status from %s to %s", e.From, e.To)
}
