package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/console-bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/console-bank-ledger/internal/models"
)

// MemoryTransactionStore is an in-memory implementation of
// interfaces.TransactionStore. Contents are lost when the process exits.
// It does not support deleting by date.
type MemoryTransactionStore struct {
	mu           sync.Mutex           // protects transactions
	transactions []models.Transaction // everything saved so far, in save order
}

// NewMemoryTransactionStore creates an empty store.
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make([]models.Transaction, 0),
	}
}

// SaveTransactions appends every transaction, duplicates included.
func (m *MemoryTransactionStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions = append(m.transactions, transactions...)
	return len(transactions), nil
}

// LoadTransactions returns a copy so callers can't modify the stored slice.
func (m *MemoryTransactionStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Transaction, len(m.transactions))
	copy(copied, m.transactions)
	return copied, nil
}

// Compile-time check: ensure MemoryTransactionStore implements TransactionStore interface
var _ interfaces.TransactionStore = (*MemoryTransactionStore)(nil)
