package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// TrialBalance sums every debit amount and every credit amount across
// the ledger, scoped by tenant when one is given.
func (r *LedgerRepository) TrialBalance(ctx context.Context, tenantID *string) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.TrialBalance(ctx, textFromPtr(tenantID))
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.DebitTotal), numericToDecimal(row.CreditTotal), nil
}
