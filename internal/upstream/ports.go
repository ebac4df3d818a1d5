// Package upstream defines the read-only ports the reporting engine
// pulls backend data through, and the adapters implementing them.
//
// Every port returns already-normalized canonical records; adapters own
// whatever shape the wire answer arrived in.
package upstream

import (
	"context"

	"spendsight/internal/core"
)

// Ports for the backend's read-only report queries. A currency of ""
// means no currency filter.
type (
	// CategoryReporter returns backend-aggregated per-category expense
	// totals for a date range.
	CategoryReporter interface {
		CategoryReport(ctx context.Context, from, to core.Day, currency string) ([]core.CategoryRow, error)
	}

	// MonthlyReporter returns backend-aggregated month buckets for one
	// calendar year.
	MonthlyReporter interface {
		MonthlyReport(ctx context.Context, year int, currency string) ([]core.MonthRow, error)
	}

	// TransactionLister returns raw ledger entries for a date range.
	// perPage caps the page size; the backend may cap it further.
	TransactionLister interface {
		ListTransactions(ctx context.Context, from, to core.Day, currency string, perPage int) ([]core.Transaction, error)
	}

	// InvestmentLister returns raw investment records for a date range.
	InvestmentLister interface {
		ListInvestments(ctx context.Context, from, to core.Day, currency string, perPage int) ([]core.Investment, error)
	}

	// CurrencyLister returns the currency catalog carrying the
	// exchange-rate table.
	CurrencyLister interface {
		ListCurrencies(ctx context.Context) ([]core.CurrencyInfo, error)
	}
)

// Backend bundles every port the reconciler needs.
type Backend interface {
	CategoryReporter
	MonthlyReporter
	TransactionLister
	InvestmentLister
	CurrencyLister
}
