package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/bookledger/internal/adapter/http/middleware"
	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Cash","type":"asset"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/balance",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/{id}",
		"GET /api/v1/ledger/trial-balance",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	accountHandler := handler.NewAccountHandler(&stubAccountService{})

	entryUC := usecase.NewEntryUseCase(nil, nil, &stubEntryRepository{}, &stubAmountRepository{}, nil, stubIDGenerator{}, nil, nil, nil)
	entryHandler := handler.NewEntryHandler(entryUC)

	balanceUC := usecase.NewBalanceUseCase(&stubAccountRepository{}, &stubAmountRepository{}, nil)
	ledgerUC := usecase.NewLedgerUseCase(&stubLedgerRepository{}, &stubAccountRepository{}, balanceUC)
	ledgerHandler := handler.NewLedgerHandler(balanceUC, ledgerUC)

	cfg := RouterConfig{
		HealthHandler:  &handler.HealthHandler{},
		AccountHandler: accountHandler,
		EntryHandler:   entryHandler,
		LedgerHandler:  ledgerHandler,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc", Type: domain.AccountTypeAsset}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string, tenantID *string) (*domain.Account, error) {
	return &domain.Account{ID: id, Type: domain.AccountTypeAsset}, nil
}

func (stubAccountService) FindAccounts(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) ChangeAccountType(ctx context.Context, input usecase.ChangeAccountTypeInput) (*domain.Account, error) {
	return &domain.Account{ID: input.AccountID, Type: input.Type}, nil
}

type stubAccountRepository struct{}

func (stubAccountRepository) Create(ctx context.Context, account *domain.Account) error { return nil }

func (stubAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return nil
}

func (stubAccountRepository) GetByID(ctx context.Context, id string, tenantID *string) (*domain.Account, error) {
	return &domain.Account{ID: id, Type: domain.AccountTypeAsset}, nil
}

func (stubAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string, tenantID *string) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountRepository) Find(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountRepository) ListChildren(ctx context.Context, parentID string, tenantID *string) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	return nil
}

func (stubAccountRepository) UpdateType(ctx context.Context, id string, accountType domain.AccountType, contra bool, updatedAt time.Time) error {
	return nil
}

func (stubAccountRepository) List(ctx context.Context, tenantID *string, limit, offset int) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubEntryRepository struct{}

func (stubEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	return nil
}

func (stubEntryRepository) GetByID(ctx context.Context, id string, tenantID *string) (*domain.Entry, error) {
	return &domain.Entry{ID: id}, nil
}

func (stubEntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubAmountRepository struct{}

func (stubAmountRepository) Create(ctx context.Context, tx usecase.Transaction, amount *domain.Amount) error {
	return nil
}

func (stubAmountRepository) ListByEntry(ctx context.Context, entryID string) (domain.Amounts, error) {
	return domain.Amounts{}, nil
}

func (stubAmountRepository) Query(ctx context.Context, q usecase.AmountQuery) (domain.Amounts, error) {
	return domain.Amounts{}, nil
}

func (stubAmountRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	return 0, nil
}

type stubLedgerRepository struct{}

func (stubLedgerRepository) TrialBalance(ctx context.Context, tenantID *string) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

type stubIDGenerator struct{}

func (stubIDGenerator) Generate() string { return "stub-id" }

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
