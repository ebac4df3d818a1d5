package currency

import (
	"time"

	"spendsight/internal/core"
)

// Snapshot is an explicitly timestamped view of the backend's currency
// list. It is threaded through a reconciliation as a value; nothing
// hangs on to module-level rate state, and how old a snapshot may be
// before it is refused is the caller's decision.
type Snapshot struct {
	Table     RateTable
	Symbols   map[string]string
	FetchedAt time.Time
}

// NewSnapshot builds a snapshot from the backend currency list.
func NewSnapshot(list []core.CurrencyInfo, fetchedAt time.Time) Snapshot {
	symbols := make(map[string]string, len(list))
	for _, c := range list {
		if c.Code != "" && c.Symbol != "" {
			symbols[c.Code] = c.Symbol
		}
	}
	return Snapshot{
		Table:     TableFromCurrencies(list),
		Symbols:   symbols,
		FetchedAt: fetchedAt,
	}
}

// Age returns how old the snapshot is at the given instant.
func (s Snapshot) Age(now time.Time) time.Duration {
	if s.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(s.FetchedAt)
}

// StalerThan reports whether the snapshot is older than maxAge. A zero
// maxAge disables the check; an empty snapshot is never fresh.
func (s Snapshot) StalerThan(maxAge time.Duration, now time.Time) bool {
	if len(s.Table) == 0 {
		return true
	}
	if maxAge <= 0 {
		return false
	}
	return s.Age(now) > maxAge
}

// Symbol returns the display symbol for a currency code, preferring
// the backend-provided symbol and falling back to a small built-in
// table, then to the dollar sign.
func (s Snapshot) Symbol(code string) string {
	if sym, ok := s.Symbols[code]; ok {
		return sym
	}
	return DefaultSymbol(code)
}
