package http

import (
	"context"
	"net/http"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/log"
	"spendsight/internal/period"
	"spendsight/internal/report"
)

// handleReport builds (or serves from cache) the report summary for
// the requested range and currency filter.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	q := s.reportQuery(r)
	summary := s.buildOrCached(ctx, q)
	writeJSON(w, http.StatusOK, summary.Rounded())
}

// handleBudgetPeriod resolves the custom budget cycle containing
// today for the requested cycle day.
func (s *Server) handleBudgetPeriod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cycleDay := queryInt(r, "cycle_day", 1)
	bounds := period.BudgetPeriod(cycleDay, core.Today(time.Now()))

	writeJSON(w, http.StatusOK, map[string]string{
		"from": bounds.From.String(),
		"to":   bounds.To.String(),
	})
}

// handleExportCSV streams the summary as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	q := s.reportQuery(r)
	summary := s.buildOrCached(ctx, q)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="report_`+summary.From+"_"+summary.To+`.csv"`)
	if err := report.WriteCSV(w, summary); err != nil {
		s.logger.ErrorContext(ctx, "csv export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
	}
}

// buildOrCached serves a recent identical query from the summary
// cache, otherwise runs a reconciliation and caches the result.
// Incomplete custom ranges bypass the cache so they keep returning the
// live previous summary.
func (s *Server) buildOrCached(ctx context.Context, q report.Query) *report.Summary {
	key := cacheKey(q)
	cacheable := q.Range != period.Custom || (q.CustomFrom != "" && q.CustomTo != "")

	if cacheable {
		if cached, ok := s.summaryCache.Get(key); ok {
			return cached
		}
	}
	summary := s.reconciler.Build(ctx, q)
	if cacheable {
		s.summaryCache.Set(key, summary)
	}
	return summary
}
