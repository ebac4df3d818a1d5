// Package period resolves symbolic range tokens and budget cycles into
// concrete calendar-day boundaries.
package period

import "strings"

// Token is a symbolic period selector, distinct from a literal date pair.
type Token string

const (
	CurrentMonth Token = "currentMonth"
	CurrentYear  Token = "currentYear"
	LastMonth    Token = "lastMonth"
	Last3Months  Token = "last3Months"
	Last6Months  Token = "last6Months"
	LastYear     Token = "lastYear"
	AllTime      Token = "allTime"
	Custom       Token = "custom"
)

// wire aliases the mobile clients historically sent alongside the
// canonical names.
var aliases = map[string]Token{
	"currentmonth": CurrentMonth,
	"currentyear":  CurrentYear,
	"lastmonth":    LastMonth,
	"1month":       LastMonth,
	"last3months":  Last3Months,
	"3months":      Last3Months,
	"last6months":  Last6Months,
	"6months":      Last6Months,
	"lastyear":     LastYear,
	"1year":        LastYear,
	"alltime":      AllTime,
	"all":          AllTime,
	"custom":       Custom,
}

// ParseToken maps a wire string to a Token. Unknown strings map to
// CurrentMonth; range selection never errors.
func ParseToken(s string) Token {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return CurrentMonth
}
