package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/bookledger/internal/adapter/http/handler"
	"github.com/iho/bookledger/internal/adapter/http/middleware"
	"github.com/iho/bookledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	EntryHandler     *handler.EntryHandler
	LedgerHandler    *handler.LedgerHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}/type", cfg.AccountHandler.ChangeType)
			r.Get("/{id}/amounts", cfg.EntryHandler.ListAmountsByAccount)
			r.Get("/{id}/balance", cfg.LedgerHandler.GetBalance)
			r.Get("/{id}/balance/verify", cfg.LedgerHandler.VerifyBalance)
		})

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Commit)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/{id}", cfg.EntryHandler.Get)
		})

		// Ledger-wide checks
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/trial-balance", cfg.LedgerHandler.TrialBalance)
			r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
		})

		// Audit trail
		if cfg.AuditHandler != nil {
			r.Get("/audit-logs", cfg.AuditHandler.List)
		}
	})

	return r
}
