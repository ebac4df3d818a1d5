package currency

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConvertIdentity(t *testing.T) {
	rates := RateTable{"USD": 1.0, "EUR": 0.9}
	for _, amount := range []string{"0", "100", "12.345678", "99999999.99"} {
		a := dec(amount)
		if got := Convert(a, "EUR", "EUR", rates); !got.Equal(a) {
			t.Errorf("Convert(%s, EUR, EUR) = %s, want unchanged", amount, got)
		}
	}
	// Identity holds even for codes absent from the table.
	a := dec("42.42")
	if got := Convert(a, "XXX", "XXX", RateTable{}); !got.Equal(a) {
		t.Errorf("Convert with unknown identical codes = %s, want %s", got, a)
	}
}

func TestConvertThroughAnchor(t *testing.T) {
	rates := RateTable{"USD": 1.0, "EUR": 0.9}
	got := Convert(dec("100"), "USD", "EUR", rates)
	if !got.Equal(dec("90")) {
		t.Errorf("Convert(100, USD, EUR) = %s, want 90", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rates := RateTable{"USD": 1.0, "EUR": 0.87345, "INR": 83.12, "JPY": 151.44}
	tolerance := dec("0.0000001")
	pairs := [][2]string{{"USD", "EUR"}, {"EUR", "INR"}, {"INR", "JPY"}, {"JPY", "USD"}}
	for _, p := range pairs {
		a := dec("1234.56")
		back := Convert(Convert(a, p[0], p[1], rates), p[1], p[0], rates)
		if back.Sub(a).Abs().GreaterThan(tolerance) {
			t.Errorf("round trip %s->%s->%s = %s, want ≈ %s", p[0], p[1], p[0], back, a)
		}
	}
}

func TestConvertFallsBackOnBadRates(t *testing.T) {
	a := dec("55.50")
	tests := []struct {
		name  string
		rates RateTable
	}{
		{"empty table", RateTable{}},
		{"missing from", RateTable{"EUR": 0.9}},
		{"missing to", RateTable{"USD": 1.0}},
		{"zero rate", RateTable{"USD": 1.0, "EUR": 0}},
		{"negative rate", RateTable{"USD": -1.0, "EUR": 0.9}},
		{"nan rate", RateTable{"USD": 1.0, "EUR": math.NaN()}},
		{"inf rate", RateTable{"USD": math.Inf(1), "EUR": 0.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(a, "USD", "EUR", tt.rates); !got.Equal(a) {
				t.Errorf("Convert = %s, want original %s", got, a)
			}
		})
	}
}

func TestTableFromCurrencies(t *testing.T) {
	list := []core.CurrencyInfo{
		{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
		{Code: "EUR", Symbol: "€", ExchangeRate: 0.9},
		{Code: "BAD", ExchangeRate: 0},
		{Code: "NEG", ExchangeRate: -3},
		{Code: "", ExchangeRate: 2},
	}
	table := TableFromCurrencies(list)
	if len(table) != 2 {
		t.Fatalf("table has %d entries, want 2: %v", len(table), table)
	}
	if r, ok := table.Rate("EUR"); !ok || r != 0.9 {
		t.Errorf("Rate(EUR) = %v, %v", r, ok)
	}
	if _, ok := table.Rate("BAD"); ok {
		t.Error("Rate(BAD) should be rejected")
	}
}

func TestSnapshotStaleness(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	list := []core.CurrencyInfo{{Code: "USD", Symbol: "$", ExchangeRate: 1.0}}

	fresh := NewSnapshot(list, now.Add(-2*time.Minute))
	if fresh.StalerThan(5*time.Minute, now) {
		t.Error("2 minute old snapshot should not be stale at 5m policy")
	}
	if !fresh.StalerThan(time.Minute, now) {
		t.Error("2 minute old snapshot should be stale at 1m policy")
	}
	if fresh.StalerThan(0, now) {
		t.Error("zero maxAge disables the staleness check")
	}

	empty := NewSnapshot(nil, now)
	if !empty.StalerThan(time.Hour, now) {
		t.Error("empty snapshot is never fresh")
	}
}

func TestSnapshotSymbol(t *testing.T) {
	snap := NewSnapshot([]core.CurrencyInfo{
		{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
		{Code: "EUR", Symbol: "", ExchangeRate: 0.9},
	}, time.Now())

	if got := snap.Symbol("USD"); got != "$" {
		t.Errorf("Symbol(USD) = %q", got)
	}
	// EUR had no backend symbol; the built-in table covers it.
	if got := snap.Symbol("EUR"); got != "€" {
		t.Errorf("Symbol(EUR) = %q", got)
	}
	if got := snap.Symbol("ZZZ"); got != "$" {
		t.Errorf("Symbol(ZZZ) = %q, want $ fallback", got)
	}
}
