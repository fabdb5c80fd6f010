package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bookledger/internal/usecase"
)

// AmountRepository implements usecase.AmountRepository.
type AmountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAmountRepository creates a new AmountRepository.
func NewAmountRepository(pool *pgxpool.Pool) *AmountRepository {
	return &AmountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new amount inside an open transaction.
func (r *AmountRepository) Create(ctx context.Context, tx usecase.Transaction, amount *domain.Amount) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateAmount(ctx, generated.CreateAmountParams{
		ID:        amount.ID,
		EntryID:   amount.EntryID,
		AccountID: amount.AccountID,
		Side:      string(amount.Side),
		Value:     decimalToNumeric(amount.Value),
		CreatedAt: timeToPgTimestamptz(amount.CreatedAt),
	})

	return err
}

// ListByEntry lists the amounts of one entry, debits before credits.
func (r *AmountRepository) ListByEntry(ctx context.Context, entryID string) (domain.Amounts, error) {
	rows, err := r.queries.ListAmountsByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	amounts := make(domain.Amounts, 0, len(rows))
	for _, row := range rows {
		amounts = append(amounts, rowToAmount(row))
	}

	return amounts, nil
}

// Query lists the amounts posted against one account, ordered by entry
// date ascending so balance folds are deterministic.
func (r *AmountRepository) Query(ctx context.Context, q usecase.AmountQuery) (domain.Amounts, error) {
	rows, err := r.queries.QueryAmountsByAccount(ctx, generated.QueryAmountsByAccountParams{
		AccountID: q.AccountID,
		TenantID:  textFromPtr(q.TenantID),
		FromDate:  dateFromPtr(q.From),
		ToDate:    dateFromPtr(q.To),
		Limit:     int32(q.Limit),
		Offset:    int32(q.Offset),
	})
	if err != nil {
		return nil, err
	}

	amounts := make(domain.Amounts, 0, len(rows))
	for _, row := range rows {
		amounts = append(amounts, rowToAmount(row))
	}

	return amounts, nil
}

// CountByAccount counts the amounts referencing an account.
func (r *AmountRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	return r.queries.CountAmountsByAccount(ctx, accountID)
}

func rowToAmount(row generated.Amount) *domain.Amount {
	return &domain.Amount{
		ID:        row.ID,
		EntryID:   row.EntryID,
		AccountID: row.AccountID,
		Side:      domain.Side(row.Side),
		Value:     numericToDecimal(row.Value),
		CreatedAt: row.CreatedAt.Time,
	}
}
