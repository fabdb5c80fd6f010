package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
	"github.com/iho/bookledger/internal/usecase/mocks"
)

func newBalanceUseCase(ctrl *gomock.Controller) (
	*usecase.BalanceUseCase,
	*mocks.MockAccountRepository,
	*mocks.MockAmountRepository,
) {
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	amountRepo := mocks.NewMockAmountRepository(ctrl)

	uc := usecase.NewBalanceUseCase(accountRepo, amountRepo, nil)

	return uc, accountRepo, amountRepo
}

func TestBalanceUseCase_Balance_EmptyAccountIsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).
		Return(&domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset}, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{}, nil)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.IsZero() {
		t.Errorf("expected zero balance, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_SignConvention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	// A liability account is credit-normal: credits increase it, debits
	// decrease it.
	accountRepo.EXPECT().GetByID(gomock.Any(), "loans", gomock.Nil()).
		Return(&domain.Account{ID: "loans", Name: "Loans Payable", Type: domain.AccountTypeLiability}, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
		{ID: "a1", AccountID: "loans", Side: domain.SideCredit, Value: decimal.NewFromInt(500)},
		{ID: "a2", AccountID: "loans", Side: domain.SideDebit, Value: decimal.NewFromInt(120)},
	}, nil)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "loans"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(380)) {
		t.Errorf("expected 380, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_PagesThroughAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).
		Return(&domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset}, nil)

	fullPage := make(domain.Amounts, 500)
	for i := range fullPage {
		fullPage[i] = &domain.Amount{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(1)}
	}

	gomock.InOrder(
		amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(fullPage, nil),
		amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
			{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(7)},
		}, nil),
	)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(507)) {
		t.Errorf("expected 507, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_AsOfFiltersQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).
		Return(&domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset}, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q usecase.AmountQuery) (domain.Amounts, error) {
			if q.To == nil || !q.To.Equal(asOf) {
				t.Errorf("expected query bounded at %s, got %v", asOf, q.To)
			}
			return domain.Amounts{}, nil
		})

	_, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash", AsOf: &asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBalanceUseCase_Balance_Rollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	parent := &domain.Account{ID: "assets", Name: "Assets", Type: domain.AccountTypeAsset}
	child := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset}

	accountRepo.EXPECT().GetByID(gomock.Any(), "assets", gomock.Nil()).Return(parent, nil)
	accountRepo.EXPECT().ListChildren(gomock.Any(), "assets", gomock.Nil()).
		Return([]*domain.Account{child}, nil)
	accountRepo.EXPECT().ListChildren(gomock.Any(), "cash", gomock.Nil()).
		Return([]*domain.Account{}, nil)

	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q usecase.AmountQuery) (domain.Amounts, error) {
			switch q.AccountID {
			case "assets":
				return domain.Amounts{{AccountID: "assets", Side: domain.SideDebit, Value: decimal.NewFromInt(100)}}, nil
			case "cash":
				return domain.Amounts{{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(25)}}, nil
			default:
				return domain.Amounts{}, nil
			}
		}).Times(2)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "assets", Rollup: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected 125, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_RollupCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	a := &domain.Account{ID: "a", Name: "A", Type: domain.AccountTypeAsset}
	b := &domain.Account{ID: "b", Name: "B", Type: domain.AccountTypeAsset, ParentAccountID: &a.ID}

	accountRepo.EXPECT().GetByID(gomock.Any(), "a", gomock.Nil()).Return(a, nil)
	accountRepo.EXPECT().ListChildren(gomock.Any(), "a", gomock.Nil()).
		Return([]*domain.Account{b}, nil)
	// A corrupt hierarchy where "a" reappears below "b".
	accountRepo.EXPECT().ListChildren(gomock.Any(), "b", gomock.Nil()).
		Return([]*domain.Account{a}, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{}, nil).AnyTimes()

	_, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "a", Rollup: true})

	var stateErr *domain.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestBalanceUseCase_Balance_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	amountRepo := mocks.NewMockAmountRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	uc := usecase.NewBalanceUseCase(accountRepo, amountRepo, cache)

	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).
		Return(&domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset}, nil)
	// A cache hit must short-circuit the recomputation.
	cache.EXPECT().Get(gomock.Any(), "balance:cash").Return("42.5", nil)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("expected 42.5, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_CacheMissPublishesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	amountRepo := mocks.NewMockAmountRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	uc := usecase.NewBalanceUseCase(accountRepo, amountRepo, cache)

	cash := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Version: 3}

	cache.EXPECT().Get(gomock.Any(), "balance:cash").Return("", errors.New("key not found"))
	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).Return(cash, nil).Times(2)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
		{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(12)},
	}, nil)
	cache.EXPECT().Set(gomock.Any(), "balance:cash", "12", gomock.Any()).Return(nil)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected 12, got %s", balance)
	}
}

func TestBalanceUseCase_Balance_SkipsCacheWriteAfterConcurrentCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	amountRepo := mocks.NewMockAmountRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	uc := usecase.NewBalanceUseCase(accountRepo, amountRepo, cache)

	// A commit lands while the balance is being recomputed: its cache
	// invalidation already ran, and publishing the now stale result would
	// pin it for the full TTL. The advanced account version must suppress
	// the write; no Set expectation is registered.
	before := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Version: 3}
	after := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Version: 4}

	cache.EXPECT().Get(gomock.Any(), "balance:cash").Return("", errors.New("key not found"))
	gomock.InOrder(
		accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).Return(before, nil),
		accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).Return(after, nil),
	)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
		{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(12)},
	}, nil)

	balance, err := uc.Balance(context.Background(), usecase.BalanceQuery{AccountID: "cash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected 12, got %s", balance)
	}
}

func TestBalanceUseCase_VerifyAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, accountRepo, amountRepo := newBalanceUseCase(ctrl)

	tests := []struct {
		name        string
		running     decimal.Decimal
		inAgreement bool
	}{
		{name: "agreement", running: decimal.NewFromInt(30), inAgreement: true},
		{name: "drift", running: decimal.NewFromInt(31), inAgreement: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).
				Return(&domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Balance: tt.running}, nil)
			amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
				{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(30)},
			}, nil)

			result, err := uc.VerifyAccount(context.Background(), "cash", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.InAgreement != tt.inAgreement {
				t.Errorf("expected InAgreement=%v, got %v (difference %s)", tt.inAgreement, result.InAgreement, result.Difference)
			}
		})
	}
}
