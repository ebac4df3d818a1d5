// Package report reconciles the backend's independently aggregated,
// independently paginated report sources into one consistent summary.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
	"spendsight/internal/period"
)

// Query selects what a reconciliation covers. A new query always
// produces a new summary; summaries are never edited in place.
type Query struct {
	Range      period.Token
	CustomFrom string // YYYY-MM-DD, only read when Range is Custom
	CustomTo   string
	// Currency is the display filter: core.AllCurrencies or a code.
	Currency string
	// BaseCurrency is the currency totals are expressed in when the
	// filter is ALL. Defaults to USD.
	BaseCurrency string
	// Locale picks month-label language. Unknown locales fall back to
	// English.
	Locale string
}

// DisplayCurrency returns the currency the summary's totals are
// expressed in under this query.
func (q Query) DisplayCurrency() string {
	if q.Currency != "" && q.Currency != core.AllCurrencies {
		return q.Currency
	}
	if q.BaseCurrency != "" {
		return q.BaseCurrency
	}
	return "USD"
}

// upstreamCurrency returns the currency parameter sent to the backend:
// empty for ALL, the code otherwise.
func (q Query) upstreamCurrency() string {
	if q.Currency == "" || q.Currency == core.AllCurrencies {
		return ""
	}
	return q.Currency
}

// filtersAll reports whether the query shows every currency.
func (q Query) filtersAll() bool {
	return q.upstreamCurrency() == ""
}

// CategoryAggregate is one per-category row of the summary. Total is
// in the row's native currency; Percentage is the row's share among
// rows of the same currency.
type CategoryAggregate struct {
	Category   string          `json:"category"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// PeriodAggregate is one bucket of the monthly (or, for long ranges,
// yearly) series, in the display currency.
type PeriodAggregate struct {
	Label       string          `json:"label"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Net         decimal.Decimal `json:"net"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

// Summary is the immutable output of one reconciliation. Totals are in
// DisplayCurrency; rounding to two decimals happens only when the
// summary is rendered, never while it is being built.
type Summary struct {
	Sequence        uint64              `json:"-"`
	Boundary        core.Boundary       `json:"-"`
	From            string              `json:"from"`
	To              string              `json:"to"`
	CurrencyFilter  string              `json:"currencyFilter"`
	DisplayCurrency string              `json:"displayCurrency"`
	CurrencySymbol  string              `json:"currencySymbol"`
	GeneratedAt     time.Time           `json:"generatedAt"`
	TotalIncome     decimal.Decimal     `json:"totalIncome"`
	TotalExpense    decimal.Decimal     `json:"totalExpense"`
	TotalSavings    decimal.Decimal     `json:"totalSavings"`
	Categories      []CategoryAggregate `json:"categoryAggregates"`
	Periods         []PeriodAggregate   `json:"periodAggregates"`
	Transactions    []core.Transaction  `json:"-"`
	Investments     []core.Investment   `json:"-"`
}

// Round2 is the display rounding applied at presentation time.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Rounded returns a copy of the summary with every numeric figure
// rounded to two decimals for display. The original keeps full
// precision so later arithmetic does not compound rounding error.
func (s *Summary) Rounded() *Summary {
	out := *s
	out.TotalIncome = Round2(s.TotalIncome)
	out.TotalExpense = Round2(s.TotalExpense)
	out.TotalSavings = Round2(s.TotalSavings)

	out.Categories = make([]CategoryAggregate, len(s.Categories))
	for i, c := range s.Categories {
		c.Total = Round2(c.Total)
		c.Percentage = Round2(c.Percentage)
		out.Categories[i] = c
	}
	out.Periods = make([]PeriodAggregate, len(s.Periods))
	for i, p := range s.Periods {
		p.Income = Round2(p.Income)
		p.Expense = Round2(p.Expense)
		p.Net = Round2(p.Net)
		p.SavingsRate = p.SavingsRate.Round(4)
		out.Periods[i] = p
	}
	return &out
}
