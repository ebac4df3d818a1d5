package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
)

var monthAbbrev = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"it": {"Gen", "Feb", "Mar", "Apr", "Mag", "Giu", "Lug", "Ago", "Set", "Ott", "Nov", "Dic"},
	"es": {"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"},
}

func monthLabel(locale string, month int) string {
	names, ok := monthAbbrev[locale]
	if !ok {
		names = monthAbbrev["en"]
	}
	if month < 1 || month > 12 {
		return ""
	}
	return names[month-1]
}

// seriesPoint is an intermediate monthly bucket keyed by calendar
// position, before labelling.
type seriesPoint struct {
	year, month int
	income      decimal.Decimal
	expense     decimal.Decimal
}

// buildSeries turns the per-year month rows into the summary's period
// series. Months outside the boundary are dropped. Ranges longer than
// twelve months are re-bucketed per year; ranges that cross a year
// keep monthly buckets but carry a two-letter year suffix so equal
// month names stay distinguishable.
func buildSeries(rows []core.MonthRow, b core.Boundary, locale string) []PeriodAggregate {
	points := make([]seriesPoint, 0, len(rows))
	for _, row := range rows {
		day := row.MonthDay(b.From)
		first := day.FirstOfMonth()
		last := day.LastOfMonth()
		// keep months that overlap the boundary at all
		if last.Before(b.From) || first.After(b.To) {
			continue
		}
		points = append(points, seriesPoint{
			year:    day.Year,
			month:   day.Month,
			income:  row.Income,
			expense: row.Expenses,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].year != points[j].year {
			return points[i].year < points[j].year
		}
		return points[i].month < points[j].month
	})

	if b.Months() > 12 {
		return yearlySeries(points)
	}
	return monthlySeries(points, b.SpansYears(), locale)
}

func monthlySeries(points []seriesPoint, withYear bool, locale string) []PeriodAggregate {
	out := make([]PeriodAggregate, 0, len(points))
	for _, p := range points {
		label := monthLabel(locale, p.month)
		if withYear {
			label = fmt.Sprintf("%s '%02d", label, p.year%100)
		}
		out = append(out, makePeriod(label, p.income, p.expense))
	}
	return out
}

func yearlySeries(points []seriesPoint) []PeriodAggregate {
	type yearBucket struct {
		income, expense decimal.Decimal
	}
	byYear := map[int]*yearBucket{}
	years := []int{}
	for _, p := range points {
		b, ok := byYear[p.year]
		if !ok {
			b = &yearBucket{}
			byYear[p.year] = b
			years = append(years, p.year)
		}
		b.income = b.income.Add(p.income)
		b.expense = b.expense.Add(p.expense)
	}
	sort.Ints(years)

	out := make([]PeriodAggregate, 0, len(years))
	for _, y := range years {
		b := byYear[y]
		out = append(out, makePeriod(fmt.Sprintf("%d", y), b.income, b.expense))
	}
	return out
}

// makePeriod derives net and savings rate from the bucket's raw
// figures. Net is always income minus expense; the backend's own
// savings column is ignored so the series stays internally consistent.
func makePeriod(label string, income, expense decimal.Decimal) PeriodAggregate {
	net := income.Sub(expense)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = net.Div(income)
	}
	return PeriodAggregate{
		Label:       label,
		Income:      income,
		Expense:     expense,
		Net:         net,
		SavingsRate: rate,
	}
}
