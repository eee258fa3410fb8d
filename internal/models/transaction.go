package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used at the console boundary.
const DateLayout = "2006-01-02"

// Transaction is a single deposit (positive amount) or withdrawal (negative
// amount) on a calendar date. It is immutable once constructed.
type Transaction struct {
	amount int64
	date   time.Time
}

// NewTransaction builds a Transaction, dropping any time-of-day from date.
func NewTransaction(amount int64, date time.Time) Transaction {
	return Transaction{
		amount: amount,
		date:   Day(date),
	}
}

// Amount is positive for a deposit and negative for a withdrawal.
func (t Transaction) Amount() int64 {
	return t.amount
}

// Date returns the calendar date at midnight UTC.
func (t Transaction) Date() time.Time {
	return t.date
}

// String formats the transaction for the console listing.
func (t Transaction) String() string {
	return fmt.Sprintf("Amount: %d, Date: %s", t.amount, t.date.Format(DateLayout))
}

// Day truncates t to its calendar date in t's own location and returns it
// as midnight UTC, so two dates compare equal with == whatever zone they
// were read in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
