package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/console-bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/console-bank-ledger/internal/models"
	"github.com/sheikh-saqib/console-bank-ledger/internal/models/events"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("deposit would overflow the balance")
	ErrDeleteUnsupported = errors.New("transaction deletion is not supported by the current store")
)

// Account holds a running balance and the transactions recorded in this
// session. Balance is tracked on its own and is not derived from the
// transaction list, so LoadTransactions can leave the two out of step.
type Account struct {
	mu           sync.Mutex           // guards balance and transactions
	balance      int64                // running balance, starts at 0
	transactions []models.Transaction // append order, replaced on load

	store     interfaces.TransactionStore // where SaveTransactions and LoadTransactions go
	publisher interfaces.EventPublisher   // optional, nil disables events
	now       func() time.Time            // dates new transactions
	log       logrus.FieldLogger
}

// Option configures an Account in NewAccount.
type Option func(*Account)

// WithClock overrides the clock used to date new transactions.
func WithClock(now func() time.Time) Option {
	return func(a *Account) { a.now = now }
}

// WithPublisher sends a TransactionRecorded event after every deposit and
// withdrawal.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(a *Account) { a.publisher = p }
}

// WithLogger sets the logger used for publish failures. Without it nothing
// is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Account) { a.log = log }
}

// NewAccount returns an empty account backed by store.
func NewAccount(store interfaces.TransactionStore, opts ...Option) *Account {
	a := &Account{
		store:        store,
		transactions: make([]models.Transaction, 0),
		now:          time.Now,
		log:          discardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Balance returns the running balance. It is not recomputed from the
// transaction list.
func (a *Account) Balance() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Transactions returns a copy of the in-memory transactions in append order.
func (a *Account) Transactions() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	copied := make([]models.Transaction, len(a.transactions))
	copy(copied, a.transactions)
	return copied
}

// Deposit adds amount to the balance and records it dated today. A
// non-positive amount, or one the balance can't hold, leaves the account
// untouched.
func (a *Account) Deposit(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	if amount > math.MaxInt64-a.balance {
		a.mu.Unlock()
		return ErrBalanceOverflow
	}
	a.balance += amount
	tx := a.record(amount)
	balance := a.balance
	a.mu.Unlock()

	a.publish(ctx, events.KindDeposit, tx, balance)
	return nil
}

// Withdraw takes amount from the balance and records -amount dated today.
// The amount must be positive and no more than the current balance.
func (a *Account) Withdraw(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	if amount > a.balance {
		a.mu.Unlock()
		return ErrInsufficientFunds
	}
	a.balance -= amount
	tx := a.record(-amount)
	balance := a.balance
	a.mu.Unlock()

	a.publish(ctx, events.KindWithdrawal, tx, balance)
	return nil
}

// record must be called with a.mu held.
func (a *Account) record(amount int64) models.Transaction {
	tx := models.NewTransaction(amount, a.now())
	a.transactions = append(a.transactions, tx)
	return tx
}

// SaveTransactions writes every in-memory transaction to the store. The
// in-memory list is kept, so saving again writes the same transactions again.
func (a *Account) SaveTransactions(ctx context.Context) (int, error) {
	pending := a.Transactions()

	saved, err := a.store.SaveTransactions(ctx, pending)
	if err != nil {
		return saved, fmt.Errorf("save transactions: %w", err)
	}
	return saved, nil
}

// LoadTransactions replaces the in-memory transactions with the store's
// contents. The balance is left as it was. If the store fails the list is
// emptied and the error returned.
func (a *Account) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	loaded, err := a.store.LoadTransactions(ctx)
	if err != nil {
		loaded = nil
	}

	a.mu.Lock()
	a.transactions = make([]models.Transaction, len(loaded))
	copy(a.transactions, loaded)
	a.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return loaded, nil
}

// DeleteTransactionsByDate removes stored transactions dated date. The
// in-memory list is not touched.
func (a *Account) DeleteTransactionsByDate(ctx context.Context, date time.Time) (int64, error) {
	deleter, ok := a.store.(interfaces.TransactionDeleter)
	if !ok {
		return 0, ErrDeleteUnsupported
	}

	deleted, err := deleter.DeleteTransactionsByDate(ctx, models.Day(date))
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return deleted, nil
}

func (a *Account) publish(ctx context.Context, kind string, tx models.Transaction, balance int64) {
	if a.publisher == nil {
		return
	}

	event := events.TransactionRecorded{
		EventID:    uuid.New().String(),
		Kind:       kind,
		Amount:     decimal.NewFromInt(tx.Amount()),
		Balance:    decimal.NewFromInt(balance),
		Date:       tx.Date().Format(models.DateLayout),
		OccurredAt: a.now(),
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.log.WithError(err).WithField("event_id", event.EventID).Warn("failed to publish transaction event")
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
