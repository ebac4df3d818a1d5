// Package core holds the calendar and record types shared by the
// reporting engine. Dates are whole calendar days with no timezone
// attached: 2024-03-10 means the local day, never an instant.
package core

import (
	"fmt"
	"time"
)

// Day is a timezone-naive calendar day.
type Day struct {
	Year  int
	Month int // 1-12
	Day   int
}

// NewDay builds a Day, normalizing out-of-range months and days the way
// the calendar does (month 13 rolls into January of the next year,
// day 0 is the last day of the previous month). This mirrors the
// normalization the backend's date parameters rely on.
func NewDay(year, month, day int) Day {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the calendar day of t in t's own location. Passing a
// UTC time and a local time on the same wall-clock day yields the same
// Day, which is the whole point.
func Today(t time.Time) Day {
	return Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDay parses a YYYY-MM-DD string as a naive calendar day. The
// string is never interpreted as UTC midnight; only the date components
// are taken, so the result is the same day in every timezone.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// String formats the day as YYYY-MM-DD, the wire format for all date
// query parameters.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the day n calendar days later (earlier for negative n).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Year, d.Month, d.Day+n)
}

// AddMonths shifts the day by n months keeping the day-of-month,
// letting the calendar normalize overflow: Jan 31 plus one month is
// Mar 2 or Mar 3 depending on the year. Range windows depend on this
// exact behavior.
func (d Day) AddMonths(n int) Day {
	return NewDay(d.Year, d.Month+n, d.Day)
}

// FirstOfMonth returns day 1 of d's month.
func (d Day) FirstOfMonth() Day {
	return Day{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the final day of d's month.
func (d Day) LastOfMonth() Day {
	return NewDay(d.Year, d.Month+1, 0)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d == other
}

// MonthKey returns the YYYY-MM bucket key for d.
func (d Day) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// DaysInMonth returns the length of the given month.
func DaysInMonth(year, month int) int {
	return NewDay(year, month+1, 0).Day
}

// Boundary is a closed [From, To] pair of calendar days. A resolved
// boundary always satisfies From <= To; a caller-supplied custom pair
// is passed through as-is.
type Boundary struct {
	From Day
	To   Day
}

// Contains reports whether day falls inside the boundary, inclusive.
func (b Boundary) Contains(day Day) bool {
	return !day.Before(b.From) && !day.After(b.To)
}

// Months counts the calendar months the boundary touches. A boundary
// from Jan 15 to Feb 2 touches two months.
func (b Boundary) Months() int {
	return (b.To.Year-b.From.Year)*12 + (b.To.Month - b.From.Month) + 1
}

// SpansYears reports whether From and To fall in different calendar years.
func (b Boundary) SpansYears() bool {
	return b.From.Year != b.To.Year
}

func (b Boundary) String() string {
	return b.From.String() + ".." + b.To.String()
}
