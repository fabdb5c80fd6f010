
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countAmountsByAccount = `-- name: CountAmountsByAccount :one
SELECT COUNT(*) FROM amounts WHERE account_id = $1
`

func (q *Queries) CountAmountsByAccount(ctx context.Context, accountID string) (int64, error) {
	row := q.db.QueryRow(ctx, countAmountsByAccount, accountID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAmount = `-- name: CreateAmount :one
INSERT INTO amounts (id, entry_id, account_id, side, value, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, entry_id, account_id, side, value, created_at
`

type CreateAmountParams struct {
	ID        string             `json:"id"`
	EntryID   string             `json:"entry_id"`
	AccountID string             `json:"account_id"`
	Side      string             `json:"side"`
	Value     pgtype.Numeric     `json:"value"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateAmount(ctx context.Context, arg CreateAmountParams) (Amount, error) {
	row := q.db.QueryRow(ctx, createAmount,
		arg.ID,
		arg.EntryID,
		arg.AccountID,
		arg.Side,
		arg.Value,
		arg.CreatedAt,
	)
	var i Amount
	err := row.Scan(
		&i.ID,
		&i.EntryID,
		&i.AccountID,
		&i.Side,
		&i.Value,
		&i.CreatedAt,
	)
	return i, err
}

const listAmountsByEntry = `-- name: ListAmountsByEntry :many
SELECT id, entry_id, account_id, side, value, created_at FROM amounts
WHERE entry_id = $1
ORDER BY side, created_at, id
`

func (q *Queries) ListAmountsByEntry(ctx context.Context, entryID string) ([]Amount, error) {
	rows, err := q.db.Query(ctx, listAmountsByEntry, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Amount{}
	for rows.Next() {
		var i Amount
		if err := rows.Scan(
			&i.ID,
			&i.EntryID,
			&i.AccountID,
			&i.Side,
			&i.Value,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const queryAmountsByAccount = `-- name: QueryAmountsByAccount :many
SELECT a.id, a.entry_id, a.account_id, a.side, a.value, a.created_at FROM amounts a
JOIN entries e ON e.id = a.entry_id
WHERE a.account_id = $1
  AND ($2::text IS NULL OR e.tenant_id = $2::text)
  AND ($3::date IS NULL OR e.entry_date >= $3::date)
  AND ($4::date IS NULL OR e.entry_date <= $4::date)
ORDER BY e.entry_date, a.created_at, a.id
LIMIT $5 OFFSET $6
`

type QueryAmountsByAccountParams struct {
	AccountID string      `json:"account_id"`
	TenantID  pgtype.Text `json:"tenant_id"`
	FromDate  pgtype.Date `json:"from_date"`
	ToDate    pgtype.Date `json:"to_date"`
	Limit     int32       `json:"limit"`
	Offset    int32       `json:"offset"`
}

func (q *Queries) QueryAmountsByAccount(ctx context.Context, arg QueryAmountsByAccountParams) ([]Amount, error) {
	rows, err := q.db.Query(ctx, queryAmountsByAccount,
		arg.AccountID,
		arg.TenantID,
		arg.FromDate,
		arg.ToDate,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Amount{}
	for rows.Next() {
		var i Amount
		if err := rows.Scan(
			&i.ID,
			&i.EntryID,
			&i.AccountID,
			&i.Side,
			&i.Value,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
