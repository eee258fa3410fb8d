package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecorded is emitted after a deposit or withdrawal is applied to
// the in-memory account.
type TransactionRecorded struct {
	EventID    string          `json:"event_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	Date       string          `json:"date"`
	OccurredAt time.Time       `json:"occurred_at"`
}

const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)
