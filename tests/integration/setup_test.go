package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/iho/bookledger/internal/adapter/http"
	"github.com/iho/bookledger/internal/adapter/http/handler"
	"github.com/iho/bookledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/bookledger/internal/adapter/repository/redis"
	infraredis "github.com/iho/bookledger/internal/infrastructure/redis"
	"github.com/iho/bookledger/internal/usecase"
	"github.com/iho/bookledger/tests/testutil"
)

// testEnv wires real repositories and use cases against the test
// database and exposes both the HTTP router and the use cases directly.
type testEnv struct {
	db          *testutil.TestDB
	router      http.Handler
	accountRepo *postgres.AccountRepository
	accountUC   *usecase.AccountUseCase
	entryUC     *usecase.EntryUseCase
	balanceUC   *usecase.BalanceUseCase
	ledgerUC    *usecase.LedgerUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	amountRepo := postgres.NewAmountRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	retrier := postgres.NewRetrier()
	idGen := postgres.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	accountUC := usecase.NewAccountUseCase(accountRepo, amountRepo, auditRepo, idGen)
	entryUC := usecase.NewEntryUseCase(txManager, accountRepo, entryRepo, amountRepo, auditRepo, idGen, retrier, cache, nil)
	balanceUC := usecase.NewBalanceUseCase(accountRepo, amountRepo, cache)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, accountRepo, balanceUC)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		LedgerHandler:    handler.NewLedgerHandler(balanceUC, ledgerUC),
		AuditHandler:     handler.NewAuditHandler(auditRepo),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
	})

	return &testEnv{
		db:          testDB,
		router:      router,
		accountRepo: accountRepo,
		accountUC:   accountUC,
		entryUC:     entryUC,
		balanceUC:   balanceUC,
		ledgerUC:    ledgerUC,
	}
}

func (env *testEnv) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, r)
	return w
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, r)
	return w
}

func newScopedRequest(t *testing.T, accountID, tenant string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)
	r.Header.Set("X-Tenant-ID", tenant)
	return r, httptest.NewRecorder()
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %s: %v", w.Body.String(), err)
	}
}
