package models

import (
	"testing"
	"time"
)

func TestNewTransactionDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	tx := NewTransaction(-30, time.Date(2026, 10, 19, 23, 59, 59, 0, loc))

	want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if tx.Date() != want {
		t.Fatalf("Date()=%v want=%v", tx.Date(), want)
	}
	if tx.Amount() != -30 {
		t.Fatalf("Amount()=%d want=-30", tx.Amount())
	}
	if got := tx.String(); got != "Amount: -30, Date: 2026-10-19" {
		t.Fatalf("String()=%q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatal(err)
	}
	if d != time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("got %v", d)
	}

	for _, in := range []string{"", "2024-2-29", "29/02/2024", "2023-02-29", "today"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) want error", in)
		}
	}
}
