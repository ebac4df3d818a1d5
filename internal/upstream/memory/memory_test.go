package memory

import (
	"context"
	"errors"
	"testing"

	"spendsight/internal/core"
)

func day(t *testing.T, s string) core.Day {
	t.Helper()
	d, err := core.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestListTransactionsFiltering(t *testing.T) {
	s := New()
	s.SeedTransactions(
		Tx(1, core.Income, "100", "USD", "Salary", "2024-03-05"),
		Tx(2, core.Expense, "50", "EUR", "Food", "2024-03-06"),
		Tx(3, core.Expense, "20", "USD", "Food", "2024-04-01"),
	)

	txs, err := s.ListTransactions(context.Background(), day(t, "2024-03-01"), day(t, "2024-03-31"), "USD", 100)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != 1 {
		t.Fatalf("txs = %+v, want only id 1", txs)
	}
}

func TestListTransactionsPerPageCap(t *testing.T) {
	s := New()
	s.SeedTransactions(
		Tx(1, core.Expense, "1", "USD", "A", "2024-03-01"),
		Tx(2, core.Expense, "2", "USD", "B", "2024-03-02"),
		Tx(3, core.Expense, "3", "USD", "C", "2024-03-03"),
	)

	txs, err := s.ListTransactions(context.Background(), day(t, "2024-03-01"), day(t, "2024-03-31"), "", 2)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
}

func TestFailWithForcesAndClearsErrors(t *testing.T) {
	s := NewSeeded()
	boom := errors.New("boom")
	s.FailWith("currencies", boom)

	if _, err := s.ListCurrencies(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected forced error, got %v", err)
	}

	s.FailWith("currencies", nil)
	list, err := s.ListCurrencies(context.Background())
	if err != nil {
		t.Fatalf("ListCurrencies after clear: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("seeded currencies missing")
	}
}

func TestNewDemoServesCurrentMonth(t *testing.T) {
	s := NewDemo()
	ctx := context.Background()

	rows, err := s.CategoryReport(ctx, core.Day{}, core.Day{}, "")
	if err != nil || len(rows) == 0 {
		t.Fatalf("CategoryReport: rows=%d err=%v", len(rows), err)
	}

	list, err := s.ListCurrencies(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("ListCurrencies: n=%d err=%v", len(list), err)
	}
}
