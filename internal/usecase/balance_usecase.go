package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
)

// BalanceUseCase derives account balances from persisted amounts.
type BalanceUseCase struct {
	accountRepo AccountRepository
	amountRepo  AmountRepository
	cache       Cache
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(accountRepo AccountRepository, amountRepo AmountRepository, cache Cache) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		amountRepo:  amountRepo,
		cache:       cache,
	}
}

// BalanceQuery represents input for a balance computation.
type BalanceQuery struct {
	AccountID string
	TenantID  *string
	// AsOf restricts the computation to entries dated on or before the
	// given day.
	AsOf *time.Time
	// Rollup additionally aggregates the balances of all descendant
	// accounts.
	Rollup bool
}

// Balance computes the account's balance by summing the signed effect of
// every committed amount. An account with no amounts has a balance of
// exactly zero. Point-in-time and rollup computations always recompute;
// the current single-account balance may be served from cache.
func (uc *BalanceUseCase) Balance(ctx context.Context, q BalanceQuery) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, q.AccountID, q.TenantID)
	if err != nil {
		return decimal.Zero, err
	}

	if !q.Rollup && q.AsOf == nil {
		if cached, ok := uc.cachedBalance(ctx, q); ok {
			return cached, nil
		}
	}

	var balance decimal.Decimal
	if q.Rollup {
		balance, err = uc.rollupBalance(ctx, account, q, map[string]struct{}{})
	} else {
		balance, err = uc.recompute(ctx, account, q.AsOf, q.TenantID)
	}

	if err != nil {
		return decimal.Zero, err
	}

	if !q.Rollup && q.AsOf == nil && uc.cache != nil {
		// A commit landing while we recomputed would have already run its
		// cache invalidation, and writing now would pin the stale value for
		// the full TTL. Publish only when the account row has not advanced
		// since the initial read.
		current, freshErr := uc.accountRepo.GetByID(ctx, q.AccountID, q.TenantID)
		if freshErr == nil && current.Version == account.Version {
			_ = uc.cache.Set(ctx, balanceCacheKey(q.AccountID, q.TenantID), balance.String(), BalanceCacheTTL)
		}
	}

	return balance, nil
}

// RunningBalance returns the incrementally maintained balance from the
// account row. It must always agree with Balance; VerifyAccount checks
// that agreement.
func (uc *BalanceUseCase) RunningBalance(ctx context.Context, accountID string, tenantID *string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID, tenantID)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// VerificationResult reports whether an account's running balance agrees
// with a full recomputation over its amounts.
type VerificationResult struct {
	AccountID       string
	RunningBalance  decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
	InAgreement     bool
	CheckedAt       time.Time
}

// VerifyAccount recomputes an account's balance from scratch and compares
// it against the running balance maintained at commit time. The two must
// agree decimal-exactly.
func (uc *BalanceUseCase) VerifyAccount(ctx context.Context, accountID string, tenantID *string) (*VerificationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID, tenantID)
	if err != nil {
		return nil, err
	}

	computed, err := uc.recompute(ctx, account, nil, tenantID)
	if err != nil {
		return nil, err
	}

	difference := account.Balance.Sub(computed)

	return &VerificationResult{
		AccountID:       accountID,
		RunningBalance:  account.Balance,
		ComputedBalance: computed,
		Difference:      difference,
		InAgreement:     difference.IsZero(),
		CheckedAt:       time.Now().UTC(),
	}, nil
}

// recompute streams the account's amounts page by page and folds them
// through SignedEffect, the single sign-convention site.
func (uc *BalanceUseCase) recompute(ctx context.Context, account *domain.Account, asOf *time.Time, tenantID *string) (decimal.Decimal, error) {
	balance := decimal.Zero
	offset := 0

	for {
		amounts, err := uc.amountRepo.Query(ctx, AmountQuery{
			AccountID: account.ID,
			TenantID:  tenantID,
			To:        asOf,
			Limit:     balancePageSize,
			Offset:    offset,
		})
		if err != nil {
			return decimal.Zero, &domain.PersistenceError{Err: err}
		}

		for _, amount := range amounts {
			balance = balance.Add(amount.SignedEffect(account))
		}

		if len(amounts) < balancePageSize {
			return balance, nil
		}

		offset += balancePageSize
	}
}

// rollupBalance aggregates an account's own balance with those of its
// descendants. The visited set makes the traversal cycle-safe: a parent
// reference that closes a loop is rejected, never followed forever.
func (uc *BalanceUseCase) rollupBalance(ctx context.Context, account *domain.Account, q BalanceQuery, visited map[string]struct{}) (decimal.Decimal, error) {
	if _, ok := visited[account.ID]; ok {
		return decimal.Zero, &domain.InvalidStateError{Reason: domain.ErrRollupCycle.Error()}
	}
	visited[account.ID] = struct{}{}

	balance, err := uc.recompute(ctx, account, q.AsOf, q.TenantID)
	if err != nil {
		return decimal.Zero, err
	}

	children, err := uc.accountRepo.ListChildren(ctx, account.ID, q.TenantID)
	if err != nil {
		return decimal.Zero, &domain.PersistenceError{Err: err}
	}

	for _, child := range children {
		childBalance, err := uc.rollupBalance(ctx, child, q, visited)
		if err != nil {
			return decimal.Zero, err
		}

		balance = balance.Add(childBalance)
	}

	return balance, nil
}

func (uc *BalanceUseCase) cachedBalance(ctx context.Context, q BalanceQuery) (decimal.Decimal, bool) {
	if uc.cache == nil {
		return decimal.Zero, false
	}

	raw, err := uc.cache.Get(ctx, balanceCacheKey(q.AccountID, q.TenantID))
	if err != nil {
		return decimal.Zero, false
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return balance, true
}
