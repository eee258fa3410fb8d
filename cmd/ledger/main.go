package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/console-bank-ledger/internal/config"
	"github.com/sheikh-saqib/console-bank-ledger/internal/console"
	"github.com/sheikh-saqib/console-bank-ledger/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/console-bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/console-bank-ledger/internal/ledger"
	"github.com/sheikh-saqib/console-bank-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/console-bank-ledger/internal/storage/sqldb"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file to load")
	reset := flag.Bool("reset", false, "drop and recreate the transactions table at startup")
	flag.Parse()

	// Initialize logger
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if resetSet() {
		cfg.DBReset = *reset
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx := context.Background()

	var store interfaces.TransactionStore
	if cfg.DBDriver == config.DriverMemory {
		store = memory.NewMemoryTransactionStore()
	} else {
		dbStore, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("Failed to set up database: %v", err)
		}
		defer dbStore.Close()
		store = dbStore
	}

	opts := []ledger.Option{ledger.WithLogger(logger)}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		opts = append(opts, ledger.WithPublisher(publisher))
		logger.WithField("topic", cfg.KafkaTopic).Info("Publishing transaction events to Kafka")
	}

	account := ledger.NewAccount(store, opts...)

	logger.WithField("driver", cfg.DBDriver).Info("Starting console ledger")
	if err := console.New(account, os.Stdin, os.Stdout, cfg.DBTimeout).Run(ctx); err != nil {
		logger.Errorf("Console stopped: %v", err)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*sqldb.Store, error) {
	store, err := sqldb.Open(cfg.DBDriver, cfg.DBConn, logger)
	if err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()

	if err := store.Ping(initCtx); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.Initialize(initCtx, cfg.DBReset); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// resetSet reports whether -reset was given explicitly, so an unset flag
// leaves DB_RESET in charge.
func resetSet() bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "reset" {
			set = true
		}
	})
	return set
}
