package period

import "spendsight/internal/core"

// epochFloor is the fixed lower bound for allTime ranges.
var epochFloor = core.Day{Year: 2000, Month: 1, Day: 1}

// Resolve maps a token plus "now" to a concrete boundary.
//
// lastMonth is calendar-aligned (the entire previous month), while
// last3Months and last6Months are rolling windows ending today.
// lastYear starts at the first of now's month one year back, which is
// deliberately not symmetric with currentYear; the asymmetry is part
// of the established range semantics and is kept as-is.
//
// For Custom, the caller-supplied boundary is passed through unchanged
// and custom is ignored for every other token.
func Resolve(token Token, now core.Day, custom core.Boundary) core.Boundary {
	switch token {
	case CurrentYear:
		return core.Boundary{From: core.Day{Year: now.Year, Month: 1, Day: 1}, To: now}
	case LastMonth:
		prev := now.FirstOfMonth().AddMonths(-1)
		return core.Boundary{From: prev, To: prev.LastOfMonth()}
	case Last3Months:
		return core.Boundary{From: now.AddMonths(-3), To: now}
	case Last6Months:
		return core.Boundary{From: now.AddMonths(-6), To: now}
	case LastYear:
		return core.Boundary{From: now.FirstOfMonth().AddMonths(-12), To: now}
	case AllTime:
		return core.Boundary{From: epochFloor, To: now}
	case Custom:
		return custom
	default: // CurrentMonth and anything unknown
		return core.Boundary{From: now.FirstOfMonth(), To: now}
	}
}

// BudgetPeriod returns the active budget period for a recurring cycle
// anchored on cycleDay. If today is on or past the cycle day the period
// started this month; otherwise it started last month. The period ends
// the day before the next cycle start, so consecutive periods never
// overlap and never gap.
//
// cycleDay outside [1,31] defaults to 1. Month and year carry is done
// through calendar normalization, so a cycle day near the end of a
// short month shifts with the calendar instead of underflowing.
func BudgetPeriod(cycleDay int, now core.Day) core.Boundary {
	if cycleDay < 1 || cycleDay > 31 {
		cycleDay = 1
	}

	var start, end core.Day
	if now.Day >= cycleDay {
		start = core.NewDay(now.Year, now.Month, cycleDay)
		end = core.NewDay(now.Year, now.Month+1, cycleDay).AddDays(-1)
	} else {
		start = core.NewDay(now.Year, now.Month-1, cycleDay)
		end = core.NewDay(now.Year, now.Month, cycleDay).AddDays(-1)
	}
	return core.Boundary{From: start, To: end}
}

// DayOr parses a YYYY-MM-DD string, falling back to the given day when
// the string is empty or unparseable. Reporting never fails on a bad
// date; it degrades to "today".
func DayOr(s string, fallback core.Day) core.Day {
	d, err := core.ParseDay(s)
	if err != nil {
		return fallback
	}
	return d
}
