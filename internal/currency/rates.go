// Package currency converts monetary amounts between currencies using
// a rate table expressed relative to a common anchor currency.
//
// Conversion is strictly best-effort: a missing or invalid rate
// degrades to returning the amount unchanged, because a report with an
// unconverted figure is more useful than no report at all.
package currency

import (
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
)

// RateTable maps currency codes to their rate against the anchor
// currency. Codes match case-sensitively.
type RateTable map[string]float64

// TableFromCurrencies builds a rate table from the backend's currency
// list. Entries without a usable rate are skipped up front so lookups
// only ever see positive finite rates or nothing.
func TableFromCurrencies(list []core.CurrencyInfo) RateTable {
	table := make(RateTable, len(list))
	for _, c := range list {
		if c.Code == "" || !usable(c.ExchangeRate) {
			continue
		}
		table[c.Code] = c.ExchangeRate
	}
	return table
}

// Rate returns the rate for code if it is present, finite and positive.
func (rt RateTable) Rate(code string) (float64, bool) {
	r, ok := rt[code]
	if !ok || !usable(r) {
		return 0, false
	}
	return r, true
}

func usable(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// Convert converts amount from one currency to another through the
// anchor: amount / rateFrom normalizes to anchor units, * rateTo moves
// into the target. Identical codes return the amount untouched, with
// no rounding. Any missing or invalid rate logs a warning and returns
// the original amount; once the rates pass validation, decimal
// arithmetic cannot produce a non-finite result.
//
// The table is read-only here: Convert never mutates it and never
// fetches rates. Staleness of the table is the caller's policy.
func Convert(amount decimal.Decimal, from, to string, rates RateTable) decimal.Decimal {
	if from == to {
		return amount
	}

	rateFrom, okFrom := rates.Rate(from)
	rateTo, okTo := rates.Rate(to)
	if !okFrom || !okTo {
		slog.Warn("currency conversion falling back to original amount",
			"component", "currency",
			"from", from,
			"to", to,
			"from_rate_ok", okFrom,
			"to_rate_ok", okTo)
		return amount
	}

	return amount.
		Div(decimal.NewFromFloat(rateFrom)).
		Mul(decimal.NewFromFloat(rateTo))
}
