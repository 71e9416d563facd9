package core

import "testing"

func TestCredit(t *testing.T) {
	got := Credit(Money{Cents: 200000}, Money{Cents: 50000})
	if got.Cents != 250000 {
		t.Fatalf("expected 250000, got %d", got.Cents)
	}
}

func TestDebit(t *testing.T) {
	got := Debit(Money{Cents: 250000}, Money{Cents: 100000})
	if got.Cents != 150000 {
		t.Fatalf("expected 150000, got %d", got.Cents)
	}
}

func TestDebitMayGoNegative(t *testing.T) {
	// The calculator is pure arithmetic; rejection happens upstream.
	got := Debit(Money{Cents: 100}, Money{Cents: 300})
	if !got.Negative() {
		t.Fatalf("expected negative result, got %d", got.Cents)
	}
}
