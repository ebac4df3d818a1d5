// Package http is the JSON facade over the reporting engine.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"spendsight/internal/cache"
	"spendsight/internal/log"
	"spendsight/internal/report"
)

const (
	defaultCacheSize = 128
	defaultCacheTTL  = 30 * time.Second
	handlerTimeout   = 15 * time.Second
)

type Server struct {
	http.Server
	reconciler *report.Reconciler
	logger     *log.Logger

	baseCurrency  string
	defaultLocale string

	// built summaries keyed by normalized query string
	summaryCache *cache.LRUCache[*report.Summary]

	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithSummaryCache sizes the summary cache.
func WithSummaryCache(maxSize int, ttl time.Duration) ServerOption {
	return func(s *Server) {
		if maxSize > 0 && ttl > 0 {
			s.summaryCache = cache.NewLRUCache[*report.Summary](maxSize, ttl)
		}
	}
}

// WithBaseCurrency sets the currency totals default to under the ALL
// filter.
func WithBaseCurrency(code string) ServerOption {
	return func(s *Server) {
		if code != "" {
			s.baseCurrency = code
		}
	}
}

// WithDefaultLocale sets the month-label locale used when a request
// does not pick one.
func WithDefaultLocale(locale string) ServerOption {
	return func(s *Server) {
		if locale != "" {
			s.defaultLocale = locale
		}
	}
}

// NewServer configures routes and caching, returning a ready-to-run
// http.Server.
func NewServer(addr string, reconciler *report.Reconciler, logger *log.Logger, opts ...ServerOption) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		reconciler:    reconciler,
		logger:        logger.WithComponent(log.ComponentHTTP),
		baseCurrency:  "USD",
		defaultLocale: "en",
		summaryCache:  cache.NewLRUCache[*report.Summary](defaultCacheSize, defaultCacheTTL),
		cacheManager:  cache.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(5 * time.Minute)

	logged := log.Middleware(logger)
	mux.Handle("/api/report", logged(http.HandlerFunc(s.handleReport)))
	mux.Handle("/api/budget-period", logged(http.HandlerFunc(s.handleBudgetPeriod)))
	mux.Handle("/api/export/csv", logged(http.HandlerFunc(s.handleExportCSV)))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// SummaryCache exposes the cache for refresh-event purging.
func (s *Server) SummaryCache() *cache.LRUCache[*report.Summary] {
	return s.summaryCache
}

// Shutdown stops the HTTP listener and the cache cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
