package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DriverMemory selects the in-memory store instead of a database.
const DriverMemory = "memory"

// Config holds application configuration
type Config struct {
	DBDriver     string
	DBConn       string
	DBReset      bool
	DBTimeout    time.Duration
	LogLevel     string
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads envFile, if it exists, into the environment without
// overriding variables that are already set, then builds the Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBConn:     getEnv("DB_CONN", "host=localhost dbname=bankdata user=postgres password=password sslmode=disable"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		KafkaTopic: getEnv("KAFKA_TOPIC", "transaction_recorded"),
	}

	reset, err := strconv.ParseBool(getEnv("DB_RESET", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_RESET: %w", err)
	}
	cfg.DBReset = reset

	timeout, err := time.ParseDuration(getEnv("DB_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DB_TIMEOUT must be positive")
	}
	cfg.DBTimeout = timeout

	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	if cfg.DBDriver == "" {
		return nil, fmt.Errorf("DB_DRIVER is required")
	}
	if cfg.DBDriver != DriverMemory && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
