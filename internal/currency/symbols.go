package currency

// fallbackSymbols covers the currencies the backend is known to serve,
// for when the currency list omits a symbol.
var fallbackSymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"SGD": "S$",
	"AUD": "A$",
	"CAD": "C$",
	"MYR": "RM",
	"THB": "฿",
	"PHP": "₱",
	"IDR": "Rp",
	"VND": "₫",
	"KRW": "₩",
	"HKD": "HK$",
	"TWD": "NT$",
	"NZD": "NZ$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"PLN": "zł",
	"TRY": "₺",
	"BRL": "R$",
	"ZAR": "R",
	"AED": "د.إ",
	"ILS": "₪",
}

// DefaultSymbol returns the built-in symbol for a code, or "$" when
// the code is unknown.
func DefaultSymbol(code string) string {
	if sym, ok := fallbackSymbols[code]; ok {
		return sym
	}
	return "$"
}
