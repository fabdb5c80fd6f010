package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bookledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.queries.CreateAccount(ctx, createAccountParams(account))

	return err
}

// CreateTx creates a new account inside an open transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateAccount(ctx, createAccountParams(account))

	return err
}

// GetByID retrieves an account by ID, scoped by tenant when one is given.
func (r *AccountRepository) GetByID(ctx context.Context, id string, tenantID *string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, generated.GetAccountByIDParams{
		ID:       id,
		TenantID: textFromPtr(tenantID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE locks.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string, tenantID *string) ([]*domain.Account, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.GetAccountsByIDsForUpdate(ctx, generated.GetAccountsByIDsForUpdateParams{
		Ids:      ids,
		TenantID: textFromPtr(tenantID),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// Find looks accounts up by the filter's non-nil fields.
func (r *AccountRepository) Find(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	var accountType pgtype.Text
	if filter.Type != nil {
		accountType = pgtype.Text{String: string(*filter.Type), Valid: true}
	}

	rows, err := r.queries.FindAccounts(ctx, generated.FindAccountsParams{
		TenantID:   textFromPtr(filter.TenantID),
		Name:       textFromPtr(filter.Name),
		Type:       accountType,
		Code:       int8FromPtr(filter.Code),
		RollupCode: int8FromPtr(filter.RollupCode),
		Limit:      int32(filter.Limit),
		Offset:     int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// ListChildren lists the direct children of an account.
func (r *AccountRepository) ListChildren(ctx context.Context, parentID string, tenantID *string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountChildren(ctx, generated.ListAccountChildrenParams{
		ParentAccountID: pgtype.Text{String: parentID, Valid: true},
		TenantID:        textFromPtr(tenantID),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// UpdateBalance updates the running balance and version of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		Version:   version,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// UpdateType changes the type and contra flag of an account.
func (r *AccountRepository) UpdateType(ctx context.Context, id string, accountType domain.AccountType, contra bool, updatedAt time.Time) error {
	return r.queries.UpdateAccountType(ctx, generated.UpdateAccountTypeParams{
		ID:        id,
		Type:      string(accountType),
		Contra:    contra,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, tenantID *string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		TenantID: textFromPtr(tenantID),
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func createAccountParams(account *domain.Account) generated.CreateAccountParams {
	return generated.CreateAccountParams{
		ID:              account.ID,
		TenantID:        textFromPtr(account.TenantID),
		Name:            account.Name,
		Type:            string(account.Type),
		Contra:          account.Contra,
		Code:            int8FromPtr(account.Code),
		RollupCode:      int8FromPtr(account.RollupCode),
		ParentAccountID: textFromPtr(account.ParentAccountID),
		Balance:         decimalToNumeric(account.Balance),
		Version:         account.Version,
		CreatedAt:       timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(account.UpdatedAt),
	}
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:              row.ID,
		TenantID:        ptrFromText(row.TenantID),
		Name:            row.Name,
		Type:            domain.AccountType(row.Type),
		Contra:          row.Contra,
		Code:            ptrFromInt8(row.Code),
		RollupCode:      ptrFromInt8(row.RollupCode),
		ParentAccountID: ptrFromText(row.ParentAccountID),
		Balance:         numericToDecimal(row.Balance),
		Version:         row.Version,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func dateFromPtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: *t, Valid: true}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func ptrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}

func int8FromPtr(i *int64) pgtype.Int8 {
	if i == nil {
		return pgtype.Int8{}
	}

	return pgtype.Int8{Int64: *i, Valid: true}
}

func ptrFromInt8(i pgtype.Int8) *int64 {
	if !i.Valid {
		return nil
	}

	v := i.Int64

	return &v
}
