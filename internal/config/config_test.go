package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{"DB_DRIVER", "DB_CONN", "DB_RESET", "DB_TIMEOUT", "LOG_LEVEL", "KAFKA_BROKERS", "KAFKA_TOPIC"}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDriver != "postgres" || cfg.DBReset || cfg.DBTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBConn == "" || cfg.KafkaTopic != "transaction_recorded" || len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_CONN", "/tmp/ledger.db")
	t.Setenv("DB_RESET", "true")
	t.Setenv("DB_TIMEOUT", "250ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DBReset || cfg.DBTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("brokers=%q", cfg.KafkaBrokers)
	}
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DB_RESET":   "maybe",
		"DB_TIMEOUT": "-1s",
		"DB_DRIVER":  "",
		"DB_CONN":    "",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := NewConfig(); err == nil {
				t.Fatalf("%s=%q: want error", key, val)
			}
		})
	}
}

func TestMemoryDriverNeedsNoConn(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("DB_CONN", "")

	if _, err := NewConfig(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn") // already set, must win over the file

	path := filepath.Join(t.TempDir(), ".env")
	data := "DB_DRIVER=memory\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DB_DRIVER") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDriver != DriverMemory || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// a missing file is not an error
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file: %v", err)
	}
}
