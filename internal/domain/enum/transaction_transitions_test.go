package enum_test

import (
	"testing"

	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionAllowedEdges(t *testing.T) {
	tests := []struct {
		from enum.TransactionStatus
		to   enum.TransactionStatus
	}{
		{enum.TransactionStatusDraft, enum.TransactionStatusBilled},
		{enum.TransactionStatusDraft, enum.TransactionStatusHold},
		{enum.TransactionStatusDraft, enum.TransactionStatusSettled},
		{enum.TransactionStatusBilled, enum.TransactionStatusHold},
		{enum.TransactionStatusBilled, enum.TransactionStatusSettled},
		{enum.TransactionStatusBilled, enum.TransactionStatusCancelled},
		{enum.TransactionStatusHold, enum.TransactionStatusPartialPayment},
		{enum.TransactionStatusPendingPayment, enum.TransactionStatusSettled},
		{enum.TransactionStatusPartialPayment, enum.TransactionStatusSettled},
		{enum.TransactionStatusPartialPayment, enum.TransactionStatusPartialPayment},
		{enum.TransactionStatusSettled, enum.TransactionStatusRefunded},
		{enum.TransactionStatusSettled, enum.TransactionStatusExchanged},
		{enum.TransactionStatusSettled, enum.TransactionStatusCancelled},
	}

	for _, tt := range tests {
		assert.True(t, enum.CanTransition(tt.from, tt.to),
			"%s -> %s should be allowed", tt.from, tt.to)
	}
}

func TestCanTransitionRejectedEdges(t *testing.T) {
	tests := []struct {
		from enum.TransactionStatus
		to   enum.TransactionStatus
	}{
		{enum.TransactionStatusDraft, enum.TransactionStatusRefunded},
		{enum.TransactionStatusBilled, enum.TransactionStatusDraft},
		{enum.TransactionStatusHold, enum.TransactionStatusBilled},
		{enum.TransactionStatusSettled, enum.TransactionStatusDraft},
		{enum.TransactionStatusSettled, enum.TransactionStatusPartialPayment},
	}

	for _, tt := range tests {
		assert.False(t, enum.CanTransition(tt.from, tt.to),
			"%s -> %s should be rejected", tt.from, tt.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	terminals := []enum.TransactionStatus{
		enum.TransactionStatusCancelled,
		enum.TransactionStatusRefunded,
		enum.TransactionStatusExchanged,
	}
	all := []enum.TransactionStatus{
		enum.TransactionStatusDraft,
		enum.TransactionStatusBilled,
		enum.TransactionStatusHold,
		enum.TransactionStatusPendingPayment,
		enum.TransactionStatusPartialPayment,
		enum.TransactionStatusSettled,
		enum.TransactionStatusCancelled,
		enum.TransactionStatusRefunded,
		enum.TransactionStatusExchanged,
	}

	for _, from := range terminals {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, enum.CanTransition(from, to),
				"%s -> %s should be rejected", from, to)
		}
	}
}

func TestValidateTransitionError(t *testing.T) {
	err := enum.ValidateTransition(enum.TransactionStatusCancelled, enum.TransactionStatusSettled)
	require.Error(t, err)

	var transitionErr *enum.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, enum.TransactionStatusCancelled, transitionErr.From)
	assert.Contains(t, transitionErr.Error(), "cancelled")
}
