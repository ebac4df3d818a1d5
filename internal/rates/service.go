// Package rates serves exchange-rate snapshots with a freshness
// policy: an in-memory snapshot while it is young enough, the backend
// when it is not, and the SQLite archive when the backend is down.
package rates

import (
	"context"
	"sync"
	"time"

	"spendsight/internal/currency"
	"spendsight/internal/log"
	"spendsight/internal/upstream"
)

// Archive is the persistence surface the service needs. *storage.RateStore
// implements it; a nil archive disables persistence.
type Archive interface {
	SaveSnapshot(ctx context.Context, snap currency.Snapshot) error
	LatestSnapshot(ctx context.Context) (currency.Snapshot, bool, error)
}

const defaultMaxAge = time.Hour

// Service hands out the snapshot the reconciler converts with.
type Service struct {
	lister  upstream.CurrencyLister
	archive Archive
	logger  *log.Logger
	maxAge  time.Duration
	now     func() time.Time

	mu   sync.Mutex
	snap currency.Snapshot
}

type Option func(*Service)

// WithMaxAge sets how old the cached snapshot may grow before a fetch
// is attempted. Zero or negative keeps serving the cached snapshot
// forever once one exists.
func WithMaxAge(d time.Duration) Option {
	return func(s *Service) { s.maxAge = d }
}

// WithArchive attaches the persistent snapshot store.
func WithArchive(a Archive) Option {
	return func(s *Service) { s.archive = a }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(lister upstream.CurrencyLister, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		lister: lister,
		logger: logger.WithComponent(log.ComponentCurrency),
		maxAge: defaultMaxAge,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot, fetching when the cached one
// is stale. Every fallback keeps the call succeeding: a fetch failure
// falls back to the stale cache, then to the archive, then to an empty
// snapshot whose conversions degrade to identity.
func (s *Service) Snapshot(ctx context.Context) (currency.Snapshot, error) {
	now := s.now()

	s.mu.Lock()
	cached := s.snap
	s.mu.Unlock()

	if !cached.StalerThan(s.maxAge, now) {
		return cached, nil
	}

	snap, err := s.Refresh(ctx)
	if err == nil {
		return snap, nil
	}
	s.logger.WarnContext(ctx, "rate fetch failed, falling back",
		log.FieldOperation, log.OpRefresh, log.FieldError, err)

	if len(cached.Table) > 0 {
		return cached, nil
	}
	if s.archive != nil {
		stored, ok, archErr := s.archive.LatestSnapshot(ctx)
		if archErr != nil {
			s.logger.WarnContext(ctx, "rate archive unavailable",
				log.FieldError, archErr)
		} else if ok {
			s.remember(stored)
			return stored, nil
		}
	}
	return currency.Snapshot{}, nil
}

// Refresh forces a backend fetch and archives the result. The refresh
// worker calls this on its schedule and on refresh events.
func (s *Service) Refresh(ctx context.Context) (currency.Snapshot, error) {
	list, err := s.lister.ListCurrencies(ctx)
	if err != nil {
		return currency.Snapshot{}, err
	}
	snap := currency.NewSnapshot(list, s.now())
	s.remember(snap)

	if s.archive != nil && len(snap.Table) > 0 {
		if err := s.archive.SaveSnapshot(ctx, snap); err != nil {
			s.logger.WarnContext(ctx, "archiving rate snapshot failed",
				log.FieldError, err)
		}
	}
	s.logger.InfoContext(ctx, "rate snapshot refreshed",
		log.FieldOperation, log.OpRefresh,
		log.FieldRowCount, len(snap.Table),
		log.FieldSnapshotAt, snap.FetchedAt)
	return snap, nil
}

func (s *Service) remember(snap currency.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.FetchedAt.After(s.snap.FetchedAt) || len(s.snap.Table) == 0 {
		s.snap = snap
	}
}
