package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
	"spendsight/internal/currency"
)

// assembleCategories validates, filters and orders the raw category
// rows and fills in percentages. Percentages are computed within each
// currency so figures in different currencies are never summed
// against each other.
func assembleCategories(rows []core.CategoryRow, q Query) []CategoryAggregate {
	filter := q.upstreamCurrency()

	out := make([]CategoryAggregate, 0, len(rows))
	sums := map[string]decimal.Decimal{}
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			continue
		}
		if row.TotalSpent.IsZero() {
			continue
		}
		agg := CategoryAggregate{
			Category: row.Category,
			Currency: row.Currency,
			Total:    row.TotalSpent,
			Count:    row.Count,
		}
		out = append(out, agg)
		if filter == "" || row.Currency == filter {
			sums[row.Currency] = sums[row.Currency].Add(row.TotalSpent)
		}
	}

	for i := range out {
		if filter != "" && out[i].Currency != filter {
			// non-matching rows stay visible but carry no share
			continue
		}
		total := sums[out[i].Currency]
		if total.IsPositive() {
			out[i].Percentage = out[i].Total.Div(total).Mul(decimal.NewFromInt(100))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := out[i].Total.Cmp(out[j].Total)
		if c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// expenseTotal sums the category aggregates into the display
// currency. Under a specific filter only matching rows count; under
// ALL every row is converted to the base currency first.
func expenseTotal(cats []CategoryAggregate, q Query, display string, rates currency.RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cats {
		if !q.filtersAll() {
			if c.Currency != q.upstreamCurrency() {
				continue
			}
			total = total.Add(c.Total)
			continue
		}
		total = total.Add(currency.Convert(c.Total, c.Currency, display, rates))
	}
	return total
}

// incomeTotal sums income transactions inside the boundary into the
// display currency. Expense rows never feed this figure; the category
// report is the sole expense source.
func incomeTotal(txs []core.Transaction, b core.Boundary, q Query, display string, rates currency.RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != core.Income {
			continue
		}
		if !b.Contains(tx.Date) {
			continue
		}
		if !q.filtersAll() {
			if tx.Currency != q.upstreamCurrency() {
				continue
			}
			total = total.Add(tx.Amount)
			continue
		}
		total = total.Add(currency.Convert(tx.Amount, tx.Currency, display, rates))
	}
	return total
}
