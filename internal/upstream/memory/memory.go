// Package memory is an in-memory upstream backend. It backs tests and
// the local development mode where no finance backend is reachable.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
	"spendsight/internal/upstream"
)

// Store holds seeded records and serves them through the upstream
// ports, applying the same date and currency filtering the real
// backend applies.
type Store struct {
	mu           sync.Mutex
	categories   []core.CategoryRow
	months       map[int][]core.MonthRow
	transactions []core.Transaction
	investments  []core.Investment
	currencies   []core.CurrencyInfo

	// failures maps an endpoint name to a forced error, letting tests
	// exercise partial-failure paths. Endpoint names: categories,
	// monthly, transactions, investments, currencies.
	failures map[string]error
}

// Ensure interface conformance
var _ upstream.Backend = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		months:   make(map[int][]core.MonthRow),
		failures: make(map[string]error),
	}
}

// NewSeeded returns a store with a small realistic dataset: two
// currencies, a few categories and a year of months.
func NewSeeded() *Store {
	s := New()
	s.currencies = []core.CurrencyInfo{
		{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
		{Code: "EUR", Symbol: "€", ExchangeRate: 0.9},
		{Code: "INR", Symbol: "₹", ExchangeRate: 83.0},
	}
	return s
}

// NewDemo returns a store populated with a few months of plausible
// activity anchored to today, for running the server without a real
// finance backend.
func NewDemo() *Store {
	s := NewSeeded()
	today := core.Today(time.Now())

	s.SeedCategories(
		Cat("Rent", "USD", "1200", 3),
		Cat("Food", "USD", "640.50", 42),
		Cat("Transport", "USD", "180", 15),
		Cat("Entertainment", "EUR", "95.20", 7),
	)

	var months []core.MonthRow
	for i := 5; i >= 0; i-- {
		m := today.AddMonths(-i)
		months = append(months, Month(m.MonthKey(), "3200", "2050.75"))
	}
	byYear := map[int][]core.MonthRow{}
	for _, row := range months {
		d := row.MonthDay(today)
		byYear[d.Year] = append(byYear[d.Year], row)
	}
	for year, rows := range byYear {
		s.SeedMonths(year, rows...)
	}

	s.SeedTransactions(
		Tx(1, core.Income, "3200", "USD", "Salary", today.FirstOfMonth().String()),
		Tx(2, core.Expense, "1200", "USD", "Rent", today.FirstOfMonth().AddDays(1).String()),
		Tx(3, core.Expense, "45.80", "USD", "Food", today.AddDays(-3).String()),
		Tx(4, core.Income, "150", "EUR", "Freelance", today.AddDays(-5).String()),
	)
	s.SeedInvestments(
		Inv(1, "Index fund", "5000", "5630.40", "USD", today.AddMonths(-18).String()),
		Inv(2, "Bonds", "2000", "1950", "USD", today.AddMonths(-6).String()),
	)
	return s
}

// SeedCategories replaces the category report rows.
func (s *Store) SeedCategories(rows ...core.CategoryRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]core.CategoryRow(nil), rows...)
}

// SeedMonths replaces the monthly report rows for one year.
func (s *Store) SeedMonths(year int, rows ...core.MonthRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.months[year] = append([]core.MonthRow(nil), rows...)
}

// SeedTransactions replaces the raw transaction list.
func (s *Store) SeedTransactions(txs ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction(nil), txs...)
}

// SeedInvestments replaces the raw investment list.
func (s *Store) SeedInvestments(invs ...core.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = append([]core.Investment(nil), invs...)
}

// SeedCurrencies replaces the currency catalog.
func (s *Store) SeedCurrencies(list ...core.CurrencyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies = append([]core.CurrencyInfo(nil), list...)
}

// FailWith forces the named endpoint to return err; a nil err clears it.
func (s *Store) FailWith(endpoint string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, endpoint)
		return
	}
	s.failures[strings.ToLower(endpoint)] = err
}

func (s *Store) forcedErr(endpoint string) error {
	return s.failures[endpoint]
}

// CategoryReport implements upstream.CategoryReporter.
func (s *Store) CategoryReport(_ context.Context, from, to core.Day, currency string) ([]core.CategoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.forcedErr("categories"); err != nil {
		return nil, err
	}
	// The fake keeps category rows period-independent; the seeded rows
	// stand for whatever the backend aggregated over [from, to].
	_ = from
	_ = to
	out := make([]core.CategoryRow, 0, len(s.categories))
	for _, row := range s.categories {
		if currency != "" && row.Currency != currency {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// MonthlyReport implements upstream.MonthlyReporter.
func (s *Store) MonthlyReport(_ context.Context, year int, currency string) ([]core.MonthRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.forcedErr("monthly"); err != nil {
		return nil, err
	}
	_ = currency // seeded rows are already in the requested currency
	return append([]core.MonthRow(nil), s.months[year]...), nil
}

// ListTransactions implements upstream.TransactionLister.
func (s *Store) ListTransactions(_ context.Context, from, to core.Day, currency string, perPage int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.forcedErr("transactions"); err != nil {
		return nil, err
	}
	boundary := core.Boundary{From: from, To: to}
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if !boundary.Contains(tx.Date) {
			continue
		}
		if currency != "" && tx.Currency != currency {
			continue
		}
		out = append(out, tx)
		if perPage > 0 && len(out) >= perPage {
			break
		}
	}
	return out, nil
}

// ListInvestments implements upstream.InvestmentLister.
func (s *Store) ListInvestments(_ context.Context, from, to core.Day, currency string, perPage int) ([]core.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.forcedErr("investments"); err != nil {
		return nil, err
	}
	boundary := core.Boundary{From: from, To: to}
	out := make([]core.Investment, 0, len(s.investments))
	for _, inv := range s.investments {
		if !boundary.Contains(inv.StartDate) {
			continue
		}
		if currency != "" && inv.Currency != currency {
			continue
		}
		out = append(out, inv)
		if perPage > 0 && len(out) >= perPage {
			break
		}
	}
	return out, nil
}

// ListCurrencies implements upstream.CurrencyLister.
func (s *Store) ListCurrencies(_ context.Context) ([]core.CurrencyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.forcedErr("currencies"); err != nil {
		return nil, err
	}
	return append([]core.CurrencyInfo(nil), s.currencies...), nil
}

// Tx is a convenience constructor for seeding.
func Tx(id int64, typ core.TransactionType, amount string, curr, category, date string) core.Transaction {
	amt, _ := decimal.NewFromString(amount)
	day, _ := core.ParseDay(date)
	return core.Transaction{
		ID:       id,
		Type:     typ,
		Amount:   amt,
		Currency: curr,
		Category: category,
		Date:     day,
	}
}

// Cat is a convenience constructor for seeding.
func Cat(category, curr, total string, count int) core.CategoryRow {
	t, _ := decimal.NewFromString(total)
	return core.CategoryRow{Category: category, Currency: curr, TotalSpent: t, Count: count}
}

// Month is a convenience constructor for seeding.
func Month(key, income, expenses string) core.MonthRow {
	in, _ := decimal.NewFromString(income)
	ex, _ := decimal.NewFromString(expenses)
	return core.MonthRow{Month: key, Income: in, Expenses: ex, Savings: in.Sub(ex)}
}

// Inv is a convenience constructor for seeding.
func Inv(id int64, category, invested, current, curr, startDate string) core.Investment {
	in, _ := decimal.NewFromString(invested)
	cur, _ := decimal.NewFromString(current)
	day, _ := core.ParseDay(startDate)
	pl := cur.Sub(in)
	pct := decimal.Zero
	if in.IsPositive() {
		pct = pl.Div(in).Mul(decimal.NewFromInt(100))
	}
	return core.Investment{
		ID:                id,
		InvestedAmount:    in,
		CurrentValue:      cur,
		ProfitLoss:        pl,
		ProfitLossPercent: pct,
		Currency:          curr,
		Category:          category,
		StartDate:         day,
	}
}
