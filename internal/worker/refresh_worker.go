// Package worker keeps the exchange-rate snapshot fresh: it refetches
// on a schedule, on refresh events from the broker, and once at
// startup, then drops caches whose contents were converted with the
// replaced rates.
package worker

import (
	"context"
	"fmt"

	"spendsight/internal/amqp"
	"spendsight/internal/log"
	"spendsight/internal/rates"
)

// Purger is any cache the worker may need to empty after a refresh.
type Purger interface {
	Purge() int
}

// Pruner trims the persistent snapshot archive. *storage.RateStore
// implements it.
type Pruner interface {
	Prune(ctx context.Context, keep int) (int64, error)
}

const defaultKeepSnapshots = 30

type RefreshWorker struct {
	rates  *rates.Service
	pruner Pruner
	caches []Purger
	logger *log.Logger
	keep   int
}

func NewRefreshWorker(svc *rates.Service, logger *log.Logger, caches ...Purger) *RefreshWorker {
	return &RefreshWorker{
		rates:  svc,
		caches: caches,
		logger: logger.WithComponent(log.ComponentWorker),
		keep:   defaultKeepSnapshots,
	}
}

// WithPruner attaches the snapshot archive for post-refresh pruning.
func (w *RefreshWorker) WithPruner(p Pruner) *RefreshWorker {
	w.pruner = p
	return w
}

// HandleRefreshMessage reacts to one broker event. A rates event
// refetches the snapshot; both scopes purge the registered caches. An
// unknown scope is dropped without requeueing.
func (w *RefreshWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.RefreshMessage) error {
	w.logger.InfoContext(ctx, "refresh event received",
		log.FieldOperation, log.OpRefresh,
		"scope", msg.Scope,
		"reason", msg.Reason)

	switch msg.Scope {
	case amqp.ScopeRates:
		if err := w.RefreshRates(ctx); err != nil {
			return fmt.Errorf("refresh rates: %w", err)
		}
	case amqp.ScopeReports:
		w.purgeAll(ctx)
	default:
		w.logger.WarnContext(ctx, "unknown refresh scope dropped", "scope", msg.Scope)
	}
	return nil
}

// RefreshRates fetches a new snapshot, purges dependent caches and
// prunes the archive.
func (w *RefreshWorker) RefreshRates(ctx context.Context) error {
	if _, err := w.rates.Refresh(ctx); err != nil {
		return err
	}
	w.purgeAll(ctx)

	if w.pruner != nil {
		if _, err := w.pruner.Prune(ctx, w.keep); err != nil {
			w.logger.WarnContext(ctx, "pruning snapshot archive failed",
				log.FieldError, err)
		}
	}
	return nil
}

// StartupRefresh warms the snapshot once at boot. Failure is logged
// and tolerated; the service starts with archived or identity rates.
func (w *RefreshWorker) StartupRefresh(ctx context.Context) {
	if err := w.RefreshRates(ctx); err != nil {
		w.logger.WarnContext(ctx, "startup rate refresh failed",
			log.FieldOperation, log.OpStartup,
			log.FieldError, err)
	}
}

func (w *RefreshWorker) purgeAll(ctx context.Context) {
	total := 0
	for _, cache := range w.caches {
		total += cache.Purge()
	}
	if total > 0 {
		w.logger.InfoContext(ctx, "purged cached summaries", log.FieldRowCount, total)
	}
}
