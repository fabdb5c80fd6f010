package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
)

// AccountFilter selects accounts for lookup queries. Nil fields are not
// applied; a non-nil TenantID is ANDed into every condition.
type AccountFilter struct {
	TenantID   *string
	Name       *string
	Type       *domain.AccountType
	Code       *int64
	RollupCode *int64
	Limit      int
	Offset     int
}

// EntryFilter selects entries. Results are ordered by entry date
// descending, most recent first.
type EntryFilter struct {
	TenantID               *string
	TargetKind             *string
	TargetID               *string
	CommercialDocumentKind *string
	CommercialDocumentID   *string
	From                   *time.Time
	To                     *time.Time
	Limit                  int
	Offset                 int
}

// AmountQuery selects the amounts posted against one account, optionally
// restricted to entries dated inside [From, To].
type AmountQuery struct {
	AccountID string
	TenantID  *string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string, tenantID *string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string, tenantID *string) ([]*domain.Account, error)
	Find(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	ListChildren(ctx context.Context, parentID string, tenantID *string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	UpdateType(ctx context.Context, id string, accountType domain.AccountType, contra bool, updatedAt time.Time) error
	List(ctx context.Context, tenantID *string, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string, tenantID *string) (*domain.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
}

// AmountRepository defines data access for amounts.
type AmountRepository interface {
	Create(ctx context.Context, tx Transaction, amount *domain.Amount) error
	ListByEntry(ctx context.Context, entryID string) (domain.Amounts, error)
	Query(ctx context.Context, q AmountQuery) (domain.Amounts, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}

// LedgerRepository defines data access for ledger-wide aggregates.
type LedgerRepository interface {
	// TrialBalance returns the total of all debit amounts and all credit
	// amounts, scoped by tenant when one is given.
	TrialBalance(ctx context.Context, tenantID *string) (debitTotal, creditTotal decimal.Decimal, err error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
