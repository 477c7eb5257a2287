package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionStatus represents the lifecycle state of a sale transaction
type TransactionStatus int

const (
	TransactionStatusDraft          TransactionStatus = 0
	TransactionStatusBilled         TransactionStatus = 1
	TransactionStatusHold           TransactionStatus = 2
	TransactionStatusPendingPayment TransactionStatus = 3
	TransactionStatusPartialPayment TransactionStatus = 4
	TransactionStatusSettled        TransactionStatus = 5
	TransactionStatusCancelled      TransactionStatus = 6
	TransactionStatusRefunded       TransactionStatus = 7
	TransactionStatusExchanged      TransactionStatus = 8
)

var transactionStatusNames = [...]string{
	"draft",
	"billed",
	"hold",
	"pending_payment",
	"partial_payment",
	"settled",
	"cancelled",
	"refunded",
	"exchanged",
}

func (s TransactionStatus) String() string {
	if int(s) < 0 || int(s) >= len(transactionStatusNames) {
		return "draft"
	}
	return transactionStatusNames[s]
}

// ParseTransactionStatus converts a status name to its enum value.
func ParseTransactionStatus(name string) (TransactionStatus, error) {
	for i, n := range transactionStatusNames {
		if n == name {
			return TransactionStatus(i), nil
		}
	}
	return TransactionStatusDraft, fmt.Errorf("unknown transaction status %q", name)
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusCancelled, TransactionStatusRefunded, TransactionStatusExchanged:
		return true
	}
	return false
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	for i, name := range transactionStatusNames {
		if name == str {
			*s = TransactionStatus(i)
			return nil
		}
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
