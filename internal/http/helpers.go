package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"spendsight/internal/core"
	"spendsight/internal/period"
	"spendsight/internal/report"
)

// reportQuery maps request parameters onto a report query, applying
// the server defaults for currency and locale.
func (s *Server) reportQuery(r *http.Request) report.Query {
	values := r.URL.Query()

	currency := strings.ToUpper(strings.TrimSpace(values.Get("currency")))
	if currency == "" {
		currency = core.AllCurrencies
	}
	locale := strings.ToLower(strings.TrimSpace(values.Get("locale")))
	if locale == "" {
		locale = s.defaultLocale
	}

	return report.Query{
		Range:        period.ParseToken(values.Get("range")),
		CustomFrom:   strings.TrimSpace(values.Get("from")),
		CustomTo:     strings.TrimSpace(values.Get("to")),
		Currency:     currency,
		BaseCurrency: s.baseCurrency,
		Locale:       locale,
	}
}

// cacheKey normalizes a query into the summary cache key.
func cacheKey(q report.Query) string {
	return strings.Join([]string{
		string(q.Range), q.CustomFrom, q.CustomTo, q.Currency, q.Locale,
	}, "|")
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
