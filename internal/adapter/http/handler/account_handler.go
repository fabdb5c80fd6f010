package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookledger/internal/adapter/http/dto"
	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string, tenantID *string) (*domain.Account, error)
	FindAccounts(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ChangeAccountType(ctx context.Context, input usecase.ChangeAccountTypeInput) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(tenantID(r), actor(r)))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id, tenantID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, or looks them up when filter query parameters are
// present (name, type, code, rollup_code).
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	filter, filtered := accountFilterFromQuery(r)
	if filtered {
		filter.TenantID = tenantID(r)
		filter.Limit = limit
		filter.Offset = offset

		accounts, err := h.accountUC.FindAccounts(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
			Accounts: dto.AccountsFromDomain(accounts),
			Total:    int64(len(accounts)),
		})

		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		TenantID: tenantID(r),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// ChangeType changes the type of an account without any recorded amounts.
func (h *AccountHandler) ChangeType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.ChangeAccountTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.ChangeAccountType(r.Context(), usecase.ChangeAccountTypeInput{
		AccountID: id,
		TenantID:  tenantID(r),
		Type:      domain.AccountType(req.Type),
		Contra:    req.Contra,
		Actor:     actor(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

func accountFilterFromQuery(r *http.Request) (usecase.AccountFilter, bool) {
	var filter usecase.AccountFilter
	filtered := false

	q := r.URL.Query()

	if name := q.Get("name"); name != "" {
		filter.Name = &name
		filtered = true
	}

	if typ := q.Get("type"); typ != "" {
		accountType := domain.AccountType(typ)
		filter.Type = &accountType
		filtered = true
	}

	if code := q.Get("code"); code != "" {
		if v, err := strconv.ParseInt(code, 10, 64); err == nil {
			filter.Code = &v
			filtered = true
		}
	}

	if rollup := q.Get("rollup_code"); rollup != "" {
		if v, err := strconv.ParseInt(rollup, 10, 64); err == nil {
			filter.RollupCode = &v
			filtered = true
		}
	}

	return filter, filtered
}
