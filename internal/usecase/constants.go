package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// BalanceCacheTTL is how long a computed balance may be served from
	// cache before recomputation. Commits invalidate eagerly.
	BalanceCacheTTL = 5 * time.Minute

	// balancePageSize is the page size used when streaming amounts for a
	// full balance recomputation.
	balancePageSize = 500
)
