package interfaces

import (
	"context"
	"time"

	"github.com/sheikh-saqib/console-bank-ledger/internal/models"
)

// TransactionStore persists and reloads an account's transactions.
//
// SaveTransactions inserts every transaction as a new row and reports how
// many rows were written before any failure. Rows written before a failure
// stay written.
type TransactionStore interface {
	SaveTransactions(ctx context.Context, transactions []models.Transaction) (int, error)
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
}

// TransactionDeleter is implemented by stores that can remove rows by date.
type TransactionDeleter interface {
	DeleteTransactionsByDate(ctx context.Context, date time.Time) (int64, error)
}
