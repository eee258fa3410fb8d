package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/console-bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/console-bank-ledger/internal/models"
)

const (
	dropTableQuery  = `DROP TABLE IF EXISTS transactions`
	insertQuery     = `INSERT INTO transactions (amount, date) VALUES ($1, $2)`
	selectQuery     = `SELECT amount, date FROM transactions`
	deleteDateQuery = `DELETE FROM transactions WHERE date = $1`
)

// Store keeps transactions in a single "transactions" table. Each call
// checks out its own connection and returns it before it finishes.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     logrus.FieldLogger
}

// NewStore wraps an open database handle. Log entries carry the dialect's
// driver name.
func NewStore(db *sql.DB, dialect Dialect, log logrus.FieldLogger) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		log:     log.WithField("driver", dialect.Driver),
	}
}

// Open opens a database handle for driver and wraps it in a Store. It does
// not touch the schema; call Initialize for that.
func Open(driver, dsn string, log logrus.FieldLogger) (*Store, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewStore(db, dialect, log), nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the transactions table if it is missing. With reset set
// it drops the table first, wiping every stored transaction.
func (s *Store) Initialize(ctx context.Context, reset bool) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error initializing database")
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if reset {
		if _, err := conn.ExecContext(ctx, dropTableQuery); err != nil {
			s.log.WithError(err).Error("Error initializing database")
			return fmt.Errorf("failed to drop transactions table: %w", err)
		}
	}
	if _, err := conn.ExecContext(ctx, s.dialect.CreateTable); err != nil {
		s.log.WithError(err).Error("Error initializing database")
		return fmt.Errorf("failed to create transactions table: %w", err)
	}

	s.log.WithField("reset", reset).Info("Database initialized: table 'transactions' is ready")
	return nil
}

// SaveTransactions inserts one row per transaction, each in its own
// statement. On failure the count of rows already inserted is returned with
// the error; those rows are not rolled back.
func (s *Store) SaveTransactions(ctx context.Context, transactions []models.Transaction) (int, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error saving transactions")
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, insertQuery)
	if err != nil {
		s.log.WithError(err).Error("Error saving transactions")
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, tx := range transactions {
		if _, err := stmt.ExecContext(ctx, tx.Amount(), formatDate(tx.Date())); err != nil {
			s.log.WithError(err).WithField("count", saved).Error("Error saving transactions")
			return saved, fmt.Errorf("failed to insert transaction: %w", err)
		}
		saved++
	}

	s.log.WithField("count", saved).Info("Transactions saved to the database")
	return saved, nil
}

// LoadTransactions returns every stored row in the engine's default order.
func (s *Store) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error loading transactions")
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectQuery)
	if err != nil {
		s.log.WithError(err).Error("Error loading transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			amount int64
			date   time.Time
		)
		if err := rows.Scan(&amount, &date); err != nil {
			s.log.WithError(err).Error("Error loading transactions")
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, models.NewTransaction(amount, date))
	}

	if err := rows.Err(); err != nil {
		s.log.WithError(err).Error("Error loading transactions")
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	s.log.WithField("count", len(transactions)).Info("Transactions loaded from the database")
	return transactions, nil
}

// DeleteTransactionsByDate removes every row dated date and returns how many
// went. Zero rows is not an error.
func (s *Store) DeleteTransactionsByDate(ctx context.Context, date time.Time) (int64, error) {
	day := formatDate(date)
	log := s.log.WithField("date", day)

	conn, err := s.db.Conn(ctx)
	if err != nil {
		log.WithError(err).Error("Error deleting transactions")
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, deleteDateQuery, day)
	if err != nil {
		log.WithError(err).Error("Error deleting transactions")
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		log.WithError(err).Error("Error deleting transactions")
		return 0, fmt.Errorf("failed to count deleted transactions: %w", err)
	}

	log.WithField("count", deleted).Info("Transactions deleted")
	return deleted, nil
}

// formatDate binds dates as ISO text so both engines store and compare the
// bare calendar date.
func formatDate(t time.Time) string {
	return models.Day(t).Format(models.DateLayout)
}

var (
	_ interfaces.TransactionStore   = (*Store)(nil)
	_ interfaces.TransactionDeleter = (*Store)(nil)
)
