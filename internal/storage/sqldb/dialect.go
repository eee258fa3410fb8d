package sqldb

import (
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnknownDriver is returned for a driver name with no Dialect.
var ErrUnknownDriver = errors.New("unknown database driver")

// Dialect holds the statements that differ between database engines.
// Queries shared by every engine use $n placeholders, which both lib/pq and
// go-sqlite3 accept.
type Dialect struct {
	Driver      string
	CreateTable string
}

var (
	Postgres = Dialect{
		Driver: "postgres",
		CreateTable: `CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		amount INTEGER NOT NULL,
		date DATE NOT NULL
	)`,
	}

	SQLite = Dialect{
		Driver: "sqlite3",
		CreateTable: `CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		amount INTEGER NOT NULL,
		date DATE NOT NULL
	)`,
	}
)

// DialectFor returns the Dialect registered under driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case Postgres.Driver:
		return Postgres, nil
	case SQLite.Driver:
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
