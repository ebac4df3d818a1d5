package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// AllCurrencies is the currency filter meaning "do not filter".
const AllCurrencies = "ALL"

type (
	TransactionType string

	// Transaction is the canonical shape of one raw ledger entry,
	// after the upstream adapter has normalized whatever field casing
	// and wrapping the backend chose to answer with.
	Transaction struct {
		ID          int64
		Type        TransactionType
		Amount      decimal.Decimal
		Currency    string
		Category    string
		Description string
		Date        Day
	}

	// Investment is one raw investment record; profit/loss figures are
	// derived at normalization time from invested amount and current value.
	Investment struct {
		ID                int64
		InvestedAmount    decimal.Decimal
		CurrentValue      decimal.Decimal
		ProfitLoss        decimal.Decimal
		ProfitLossPercent decimal.Decimal
		Currency          string
		Category          string
		StartDate         Day
	}

	// CategoryRow is one backend-aggregated per-category total for the
	// requested period. The total is in the row's native currency.
	CategoryRow struct {
		Category   string
		Currency   string
		TotalSpent decimal.Decimal
		Count      int
	}

	// MonthRow is one backend-aggregated calendar-month bucket.
	MonthRow struct {
		Month    string // YYYY-MM
		Income   decimal.Decimal
		Expenses decimal.Decimal
		Savings  decimal.Decimal
	}

	// CurrencyInfo is one entry of the backend's currency list, the
	// source of the exchange-rate table.
	CurrencyInfo struct {
		Code         string
		Symbol       string
		ExchangeRate float64
	}
)

var (
	ErrEmptyCurrency  = errors.New("empty currency code")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrNegativeAmount = errors.New("negative amount")
)

// Validate checks the invariants a normalized transaction must hold.
// Amounts are magnitudes; direction is carried by Type.
func (t Transaction) Validate() error {
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(t.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}

// Validate checks the invariants a normalized category row must hold.
func (c CategoryRow) Validate() error {
	if strings.TrimSpace(c.Category) == "" {
		return ErrEmptyCategory
	}
	if c.TotalSpent.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// MonthDay returns the first day of the row's month. Rows with an
// unparseable month key are anchored to the given fallback day, so a
// dirty row degrades instead of poisoning the series.
func (m MonthRow) MonthDay(fallback Day) Day {
	d, err := ParseDay(m.Month + "-01")
	if err != nil {
		return fallback
	}
	return d
}
