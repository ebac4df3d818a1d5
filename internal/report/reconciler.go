package report

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"spendsight/internal/core"
	"spendsight/internal/currency"
	"spendsight/internal/log"
	"spendsight/internal/period"
	"spendsight/internal/upstream"
)

// RateSource hands the reconciler the exchange rates in effect for a
// build. Implementations decide freshness; the reconciler only
// consumes the snapshot.
type RateSource interface {
	Snapshot(ctx context.Context) (currency.Snapshot, error)
}

// staticRates is the zero-dependency RateSource used when no rate
// service is configured. Conversions then fall back to identity.
type staticRates struct{ snap currency.Snapshot }

func (s staticRates) Snapshot(context.Context) (currency.Snapshot, error) { return s.snap, nil }

// StaticRates returns a RateSource that always serves the given
// snapshot. Mostly useful in tests.
func StaticRates(snap currency.Snapshot) RateSource { return staticRates{snap: snap} }

const defaultPerPage = 1000

// Reconciler fetches the four report sources in parallel and folds
// them into a Summary. Every source may fail independently; a failed
// source contributes empty data and the build still succeeds.
//
// Concurrent builds are ordered by a monotonic sequence number and the
// highest sequence wins: a build that finishes after a newer one has
// already committed is discarded.
type Reconciler struct {
	backend upstream.Backend
	rates   RateSource
	logger  *log.Logger
	perPage int
	now     func() time.Time

	seq     atomic.Uint64
	mu      sync.Mutex
	current *Summary
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPerPage caps how many transactions and investments a build
// requests from the backend.
func WithPerPage(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.perPage = n
		}
	}
}

// WithClock overrides the reconciler's notion of now.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithRates sets the exchange-rate source used for cross-currency
// totals.
func WithRates(src RateSource) Option {
	return func(r *Reconciler) {
		if src != nil {
			r.rates = src
		}
	}
}

func New(backend upstream.Backend, logger *log.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		backend: backend,
		rates:   staticRates{},
		logger:  logger.WithComponent(log.ComponentReport),
		perPage: defaultPerPage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the most recently committed summary, or nil when no
// build has completed yet.
func (r *Reconciler) Current() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Build runs one reconciliation for the query and returns the
// committed summary. A custom range missing either endpoint performs
// no fetches and leaves the previous summary in place.
func (r *Reconciler) Build(ctx context.Context, q Query) *Summary {
	if q.Range == period.Custom && (q.CustomFrom == "" || q.CustomTo == "") {
		r.logger.WarnContext(ctx, "custom range incomplete, keeping previous summary",
			log.FieldFrom, q.CustomFrom, log.FieldTo, q.CustomTo)
		if cur := r.Current(); cur != nil {
			return cur
		}
		return r.emptySummary(q, core.Boundary{})
	}

	now := core.Today(r.now())
	var custom core.Boundary
	if q.Range == period.Custom {
		custom = core.Boundary{
			From: period.DayOr(q.CustomFrom, now),
			To:   period.DayOr(q.CustomTo, now),
		}
	}
	bounds := period.Resolve(q.Range, now, custom)
	seq := r.seq.Add(1)

	r.logger.InfoContext(ctx, "reconciling report",
		log.FieldOperation, log.OpReconcile,
		log.FieldSequence, seq,
		log.FieldRange, bounds.String(),
		log.FieldCurrency, q.Currency)

	data := r.fetchAll(ctx, q, bounds)
	summary := r.assemble(q, bounds, seq, data)
	return r.commit(ctx, summary)
}

// fetched carries the raw results of one build's parallel fetches.
// Any slice may be empty when its source failed.
type fetched struct {
	categories   []core.CategoryRow
	months       []core.MonthRow
	transactions []core.Transaction
	investments  []core.Investment
	rates        currency.Snapshot
}

func (r *Reconciler) fetchAll(ctx context.Context, q Query, b core.Boundary) fetched {
	cur := q.upstreamCurrency()
	var (
		data    fetched
		monthMu sync.Mutex
		g       errgroup.Group
	)

	g.Go(func() error {
		rows, err := r.backend.CategoryReport(ctx, b.From, b.To, cur)
		if err != nil {
			r.degraded(ctx, "categories", err)
			return nil
		}
		data.categories = rows
		return nil
	})

	// one fetch per calendar year the boundary touches
	for year := b.From.Year; year <= b.To.Year; year++ {
		year := year
		g.Go(func() error {
			rows, err := r.backend.MonthlyReport(ctx, year, cur)
			if err != nil {
				r.degraded(ctx, "monthly", err, log.FieldYear, year)
				return nil
			}
			monthMu.Lock()
			data.months = append(data.months, rows...)
			monthMu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		txs, err := r.backend.ListTransactions(ctx, b.From, b.To, cur, r.perPage)
		if err != nil {
			r.degraded(ctx, "transactions", err)
			return nil
		}
		data.transactions = txs
		return nil
	})

	g.Go(func() error {
		invs, err := r.backend.ListInvestments(ctx, b.From, b.To, cur, r.perPage)
		if err != nil {
			r.degraded(ctx, "investments", err)
			return nil
		}
		data.investments = invs
		return nil
	})

	g.Go(func() error {
		snap, err := r.rates.Snapshot(ctx)
		if err != nil {
			r.degraded(ctx, "rates", err)
			return nil
		}
		data.rates = snap
		return nil
	})

	// workers log and swallow their own failures
	_ = g.Wait()
	return data
}

func (r *Reconciler) degraded(ctx context.Context, endpoint string, err error, extra ...any) {
	args := append([]any{
		log.FieldEndpoint, endpoint,
		log.FieldError, err,
	}, extra...)
	r.logger.WarnContext(ctx, "source unavailable, degrading", args...)
}

func (r *Reconciler) assemble(q Query, b core.Boundary, seq uint64, data fetched) *Summary {
	display := q.DisplayCurrency()
	cats := assembleCategories(data.categories, q)

	expense := expenseTotal(cats, q, display, data.rates.Table)
	income := incomeTotal(data.transactions, b, q, display, data.rates.Table)

	return &Summary{
		Sequence:        seq,
		Boundary:        b,
		From:            b.From.String(),
		To:              b.To.String(),
		CurrencyFilter:  q.Currency,
		DisplayCurrency: display,
		CurrencySymbol:  data.rates.Symbol(display),
		GeneratedAt:     r.now(),
		TotalIncome:     income,
		TotalExpense:    expense,
		TotalSavings:    income.Sub(expense),
		Categories:      cats,
		Periods:         buildSeries(data.months, b, q.Locale),
		Transactions:    data.transactions,
		Investments:     data.investments,
	}
}

func (r *Reconciler) emptySummary(q Query, b core.Boundary) *Summary {
	return &Summary{
		Boundary:        b,
		From:            b.From.String(),
		To:              b.To.String(),
		CurrencyFilter:  q.Currency,
		DisplayCurrency: q.DisplayCurrency(),
		CurrencySymbol:  currency.DefaultSymbol(q.DisplayCurrency()),
		GeneratedAt:     r.now(),
		Categories:      []CategoryAggregate{},
		Periods:         []PeriodAggregate{},
	}
}

// commit installs the summary unless a newer build already finished,
// in which case the stale result is discarded and the newer summary is
// returned instead.
func (r *Reconciler) commit(ctx context.Context, s *Summary) *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.current.Sequence > s.Sequence {
		r.logger.InfoContext(ctx, "discarding stale reconciliation",
			log.FieldSequence, s.Sequence)
		return r.current
	}
	r.current = s
	return s
}
