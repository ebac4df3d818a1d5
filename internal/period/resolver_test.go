package period

import (
	"testing"

	"spendsight/internal/core"
)

func TestResolve(t *testing.T) {
	now := core.Day{Year: 2024, Month: 3, Day: 10}

	tests := []struct {
		name  string
		token Token
		want  core.Boundary
	}{
		{"current month", CurrentMonth, core.Boundary{From: core.Day{Year: 2024, Month: 3, Day: 1}, To: now}},
		{"current year", CurrentYear, core.Boundary{From: core.Day{Year: 2024, Month: 1, Day: 1}, To: now}},
		{"last month is the whole previous month", LastMonth, core.Boundary{From: core.Day{Year: 2024, Month: 2, Day: 1}, To: core.Day{Year: 2024, Month: 2, Day: 29}}},
		{"last 3 months rolls from today", Last3Months, core.Boundary{From: core.Day{Year: 2023, Month: 12, Day: 10}, To: now}},
		{"last 6 months rolls from today", Last6Months, core.Boundary{From: core.Day{Year: 2023, Month: 9, Day: 10}, To: now}},
		{"last year starts at first of month a year back", LastYear, core.Boundary{From: core.Day{Year: 2023, Month: 3, Day: 1}, To: now}},
		{"all time floors at 2000", AllTime, core.Boundary{From: core.Day{Year: 2000, Month: 1, Day: 1}, To: now}},
		{"unknown token behaves like current month", Token("bogus"), core.Boundary{From: core.Day{Year: 2024, Month: 3, Day: 1}, To: now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.token, now, core.Boundary{})
			if got != tt.want {
				t.Errorf("Resolve(%s) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestResolveLastMonthAcrossYear(t *testing.T) {
	now := core.Day{Year: 2024, Month: 1, Day: 15}
	got := Resolve(LastMonth, now, core.Boundary{})
	want := core.Boundary{From: core.Day{Year: 2023, Month: 12, Day: 1}, To: core.Day{Year: 2023, Month: 12, Day: 31}}
	if got != want {
		t.Errorf("Resolve(lastMonth) = %v, want %v", got, want)
	}
}

func TestResolveLastMonthIgnoresDayOfMonth(t *testing.T) {
	want := core.Boundary{From: core.Day{Year: 2024, Month: 2, Day: 1}, To: core.Day{Year: 2024, Month: 2, Day: 29}}
	for day := 1; day <= 31; day++ {
		now := core.Day{Year: 2024, Month: 3, Day: day}
		if got := Resolve(LastMonth, now, core.Boundary{}); got != want {
			t.Fatalf("day %d: Resolve(lastMonth) = %v, want %v", day, got, want)
		}
	}
}

func TestResolveCustomPassesThrough(t *testing.T) {
	now := core.Day{Year: 2024, Month: 3, Day: 10}
	custom := core.Boundary{From: core.Day{Year: 2022, Month: 5, Day: 4}, To: core.Day{Year: 2022, Month: 6, Day: 1}}
	if got := Resolve(Custom, now, custom); got != custom {
		t.Errorf("Resolve(custom) = %v, want %v", got, custom)
	}
	// Non-custom tokens ignore the supplied pair.
	if got := Resolve(CurrentMonth, now, custom); got.From != (core.Day{Year: 2024, Month: 3, Day: 1}) {
		t.Errorf("Resolve(currentMonth) used custom dates: %v", got)
	}
}

func TestBudgetPeriodScenarios(t *testing.T) {
	tests := []struct {
		name     string
		cycleDay int
		now      core.Day
		want     core.Boundary
	}{
		{
			"before cycle day, period started last month",
			15, core.Day{Year: 2024, Month: 3, Day: 10},
			core.Boundary{From: core.Day{Year: 2024, Month: 2, Day: 15}, To: core.Day{Year: 2024, Month: 3, Day: 14}},
		},
		{
			"past cycle day, period started this month",
			15, core.Day{Year: 2024, Month: 3, Day: 20},
			core.Boundary{From: core.Day{Year: 2024, Month: 3, Day: 15}, To: core.Day{Year: 2024, Month: 4, Day: 14}},
		},
		{
			"december rolls into january",
			15, core.Day{Year: 2023, Month: 12, Day: 20},
			core.Boundary{From: core.Day{Year: 2023, Month: 12, Day: 15}, To: core.Day{Year: 2024, Month: 1, Day: 14}},
		},
		{
			"january looks back into december",
			15, core.Day{Year: 2024, Month: 1, Day: 10},
			core.Boundary{From: core.Day{Year: 2023, Month: 12, Day: 15}, To: core.Day{Year: 2024, Month: 1, Day: 14}},
		},
		{
			"on the cycle day itself the new period starts",
			15, core.Day{Year: 2024, Month: 3, Day: 15},
			core.Boundary{From: core.Day{Year: 2024, Month: 3, Day: 15}, To: core.Day{Year: 2024, Month: 4, Day: 14}},
		},
		{
			"cycle day 1 is the calendar month",
			1, core.Day{Year: 2024, Month: 2, Day: 10},
			core.Boundary{From: core.Day{Year: 2024, Month: 2, Day: 1}, To: core.Day{Year: 2024, Month: 2, Day: 29}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetPeriod(tt.cycleDay, tt.now); got != tt.want {
				t.Errorf("BudgetPeriod(%d, %v) = %v, want %v", tt.cycleDay, tt.now, got, tt.want)
			}
		})
	}
}

func TestBudgetPeriodInvalidCycleDayDefaultsToOne(t *testing.T) {
	now := core.Day{Year: 2024, Month: 3, Day: 10}
	want := BudgetPeriod(1, now)
	for _, bad := range []int{0, -3, 32, 99} {
		if got := BudgetPeriod(bad, now); got != want {
			t.Errorf("BudgetPeriod(%d) = %v, want default %v", bad, got, want)
		}
	}
}

// Every cycle day both adjacent months can host must yield a period
// that contains today and is exactly as long as the month the period
// starts in. Cycle days 29-31 go through calendar normalization around
// February and are covered separately below.
func TestBudgetPeriodAlwaysContainsToday(t *testing.T) {
	months := []core.Day{
		{Year: 2024, Month: 1}, {Year: 2024, Month: 2}, {Year: 2023, Month: 2}, {Year: 2024, Month: 6}, {Year: 2023, Month: 12},
	}
	for _, m := range months {
		for day := 1; day <= core.DaysInMonth(m.Year, m.Month); day++ {
			now := core.Day{Year: m.Year, Month: m.Month, Day: day}
			for cycleDay := 1; cycleDay <= 28; cycleDay++ {
				p := BudgetPeriod(cycleDay, now)
				if !p.Contains(now) {
					t.Fatalf("BudgetPeriod(%d, %v) = %v does not contain today", cycleDay, now, p)
				}
				if p.To.Before(p.From) {
					t.Fatalf("BudgetPeriod(%d, %v) = %v is inverted", cycleDay, now, p)
				}
				wantLen := core.DaysInMonth(p.From.Year, p.From.Month)
				length := 1
				for d := p.From; d != p.To; d = d.AddDays(1) {
					length++
				}
				if length != wantLen {
					t.Fatalf("BudgetPeriod(%d, %v) = %v has %d days, want %d", cycleDay, now, p, length, wantLen)
				}
			}
		}
	}
}

// A cycle day February cannot host rolls through calendar
// normalization: day 31 in February lands in early March.
func TestBudgetPeriodMonthEndNormalization(t *testing.T) {
	// 2024-04-10 with cycle day 31: April has no day 31, so the active
	// period started on March 31 and runs to April 30.
	got := BudgetPeriod(31, core.Day{Year: 2024, Month: 4, Day: 10})
	want := core.Boundary{From: core.Day{Year: 2024, Month: 3, Day: 31}, To: core.Day{Year: 2024, Month: 4, Day: 30}}
	if got != want {
		t.Errorf("BudgetPeriod(31, 2024-04-10) = %v, want %v", got, want)
	}

	// 2024-02-15 with cycle day 31: the period started January 31; its
	// end, "February 31" minus one day, normalizes to March 1 in a
	// leap year.
	got = BudgetPeriod(31, core.Day{Year: 2024, Month: 2, Day: 15})
	want = core.Boundary{From: core.Day{Year: 2024, Month: 1, Day: 31}, To: core.Day{Year: 2024, Month: 3, Day: 1}}
	if got != want {
		t.Errorf("BudgetPeriod(31, 2024-02-15) = %v, want %v", got, want)
	}
}

// Consecutive periods for the same cycle day never overlap and never gap.
func TestBudgetPeriodsAreContiguous(t *testing.T) {
	for cycleDay := 1; cycleDay <= 28; cycleDay++ {
		before := BudgetPeriod(cycleDay, core.Day{Year: 2024, Month: 3, Day: 1})
		after := BudgetPeriod(cycleDay, core.Day{Year: 2024, Month: 3, Day: 28})
		if cycleDay == 1 {
			// March 1 with cycle day 1 is already the March period.
			before = BudgetPeriod(cycleDay, core.Day{Year: 2024, Month: 2, Day: 15})
		}
		if before == after {
			continue // same active period for both probes
		}
		if got := before.To.AddDays(1); got != after.From {
			t.Errorf("cycle day %d: period %v then %v leaves a gap or overlap", cycleDay, before, after)
		}
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		in   string
		want Token
	}{
		{"currentMonth", CurrentMonth},
		{"1month", LastMonth},
		{"3months", Last3Months},
		{"6months", Last6Months},
		{"1year", LastYear},
		{"all", AllTime},
		{"custom", Custom},
		{"  currentYear ", CurrentYear},
		{"whatever", CurrentMonth},
		{"", CurrentMonth},
	}
	for _, tt := range tests {
		if got := ParseToken(tt.in); got != tt.want {
			t.Errorf("ParseToken(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDayOr(t *testing.T) {
	fallback := core.Day{Year: 2024, Month: 3, Day: 10}
	if got := DayOr("2022-01-05", fallback); got != (core.Day{Year: 2022, Month: 1, Day: 5}) {
		t.Errorf("DayOr parsed = %v", got)
	}
	if got := DayOr("junk", fallback); got != fallback {
		t.Errorf("DayOr fallback = %v, want %v", got, fallback)
	}
	if got := DayOr("", fallback); got != fallback {
		t.Errorf("DayOr empty = %v, want %v", got, fallback)
	}
}
