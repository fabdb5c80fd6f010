
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at
`

type CreateAccountParams struct {
	ID              string             `json:"id"`
	TenantID        pgtype.Text        `json:"tenant_id"`
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Contra          bool               `json:"contra"`
	Code            pgtype.Int8        `json:"code"`
	RollupCode      pgtype.Int8        `json:"rollup_code"`
	ParentAccountID pgtype.Text        `json:"parent_account_id"`
	Balance         pgtype.Numeric     `json:"balance"`
	Version         int64              `json:"version"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.ID,
		arg.TenantID,
		arg.Name,
		arg.Type,
		arg.Contra,
		arg.Code,
		arg.RollupCode,
		arg.ParentAccountID,
		arg.Balance,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Name,
		&i.Type,
		&i.Contra,
		&i.Code,
		&i.RollupCode,
		&i.ParentAccountID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at FROM accounts
WHERE id = $1 AND ($2::text IS NULL OR tenant_id = $2::text)
`

type GetAccountByIDParams struct {
	ID       string      `json:"id"`
	TenantID pgtype.Text `json:"tenant_id"`
}

func (q *Queries) GetAccountByID(ctx context.Context, arg GetAccountByIDParams) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, arg.ID, arg.TenantID)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Name,
		&i.Type,
		&i.Contra,
		&i.Code,
		&i.RollupCode,
		&i.ParentAccountID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByIDsForUpdate = `-- name: GetAccountsByIDsForUpdate :many
SELECT id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at FROM accounts
WHERE id = ANY($1::text[]) AND ($2::text IS NULL OR tenant_id = $2::text)
ORDER BY id
FOR UPDATE
`

type GetAccountsByIDsForUpdateParams struct {
	Ids      []string    `json:"ids"`
	TenantID pgtype.Text `json:"tenant_id"`
}

func (q *Queries) GetAccountsByIDsForUpdate(ctx context.Context, arg GetAccountsByIDsForUpdateParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByIDsForUpdate, arg.Ids, arg.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Name,
			&i.Type,
			&i.Contra,
			&i.Code,
			&i.RollupCode,
			&i.ParentAccountID,
			&i.Balance,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const findAccounts = `-- name: FindAccounts :many
SELECT id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at FROM accounts
WHERE ($1::text IS NULL OR tenant_id = $1::text)
  AND ($2::text IS NULL OR name = $2::text)
  AND ($3::text IS NULL OR type = $3::text)
  AND ($4::bigint IS NULL OR code = $4::bigint)
  AND ($5::bigint IS NULL OR rollup_code = $5::bigint)
ORDER BY code NULLS LAST, name
LIMIT $6 OFFSET $7
`

type FindAccountsParams struct {
	TenantID   pgtype.Text `json:"tenant_id"`
	Name       pgtype.Text `json:"name"`
	Type       pgtype.Text `json:"type"`
	Code       pgtype.Int8 `json:"code"`
	RollupCode pgtype.Int8 `json:"rollup_code"`
	Limit      int32       `json:"limit"`
	Offset     int32       `json:"offset"`
}

func (q *Queries) FindAccounts(ctx context.Context, arg FindAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, findAccounts,
		arg.TenantID,
		arg.Name,
		arg.Type,
		arg.Code,
		arg.RollupCode,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Name,
			&i.Type,
			&i.Contra,
			&i.Code,
			&i.RollupCode,
			&i.ParentAccountID,
			&i.Balance,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccountChildren = `-- name: ListAccountChildren :many
SELECT id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at FROM accounts
WHERE parent_account_id = $1 AND ($2::text IS NULL OR tenant_id = $2::text)
ORDER BY code NULLS LAST, name
`

type ListAccountChildrenParams struct {
	ParentAccountID pgtype.Text `json:"parent_account_id"`
	TenantID        pgtype.Text `json:"tenant_id"`
}

func (q *Queries) ListAccountChildren(ctx context.Context, arg ListAccountChildrenParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountChildren, arg.ParentAccountID, arg.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Name,
			&i.Type,
			&i.Contra,
			&i.Code,
			&i.RollupCode,
			&i.ParentAccountID,
			&i.Balance,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccounts = `-- name: ListAccounts :many
SELECT id, tenant_id, name, type, contra, code, rollup_code, parent_account_id, balance, version, created_at, updated_at FROM accounts
WHERE ($1::text IS NULL OR tenant_id = $1::text)
ORDER BY code NULLS LAST, name
LIMIT $2 OFFSET $3
`

type ListAccountsParams struct {
	TenantID pgtype.Text `json:"tenant_id"`
	Limit    int32       `json:"limit"`
	Offset   int32       `json:"offset"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.TenantID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Name,
			&i.Type,
			&i.Contra,
			&i.Code,
			&i.RollupCode,
			&i.ParentAccountID,
			&i.Balance,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateAccountBalance = `-- name: UpdateAccountBalance :exec
UPDATE accounts
SET balance = $2, version = $3, updated_at = $4
WHERE id = $1
`

type UpdateAccountBalanceParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Version   int64              `json:"version"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) error {
	_, err := q.db.Exec(ctx, updateAccountBalance,
		arg.ID,
		arg.Balance,
		arg.Version,
		arg.UpdatedAt,
	)
	return err
}

const updateAccountType = `-- name: UpdateAccountType :exec
UPDATE accounts
SET type = $2, contra = $3, updated_at = $4
WHERE id = $1
`

type UpdateAccountTypeParams struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	Contra    bool               `json:"contra"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountType(ctx context.Context, arg UpdateAccountTypeParams) error {
	_, err := q.db.Exec(ctx, updateAccountType,
		arg.ID,
		arg.Type,
		arg.Contra,
		arg.UpdatedAt,
	)
	return err
}
