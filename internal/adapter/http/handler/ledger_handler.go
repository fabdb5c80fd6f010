package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookledger/internal/adapter/http/dto"
	"github.com/iho/bookledger/internal/usecase"
)

// LedgerHandler handles balance and ledger-wide HTTP requests.
type LedgerHandler struct {
	balanceUC *usecase.BalanceUseCase
	ledgerUC  *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(balanceUC *usecase.BalanceUseCase, ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{
		balanceUC: balanceUC,
		ledgerUC:  ledgerUC,
	}
}

// GetBalance computes an account's balance. Supports as_of (YYYY-MM-DD)
// for point-in-time balances and rollup=true for hierarchy aggregation.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	query := usecase.BalanceQuery{
		AccountID: accountID,
		TenantID:  tenantID(r),
		Rollup:    r.URL.Query().Get("rollup") == "true",
	}

	var badDate string
	if asOf, ok := parseDateQuery(r, "as_of", &badDate); ok {
		query.AsOf = asOf
	}
	if badDate != "" {
		writeError(w, http.StatusBadRequest, "invalid as_of format (use YYYY-MM-DD)", "")
		return
	}

	balance, err := h.balanceUC.Balance(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
		Rollup:    query.Rollup,
	}
	if query.AsOf != nil {
		asOf := query.AsOf.Format("2006-01-02")
		resp.AsOf = &asOf
	}

	writeJSON(w, http.StatusOK, resp)
}

// VerifyBalance recomputes an account's balance and compares it against
// the running balance.
func (h *LedgerHandler) VerifyBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.balanceUC.VerifyAccount(r.Context(), accountID, tenantID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if !result.InAgreement {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.VerificationFromResult(result))
}

// TrialBalance returns the ledger-wide debit and credit totals.
func (h *LedgerHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerUC.TrialBalance(r.Context(), tenantID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceResponse{
		DebitTotal:  result.DebitTotal,
		CreditTotal: result.CreditTotal,
		Balanced:    result.Balanced,
		CheckedAt:   result.CheckedAt,
	})
}

// CheckConsistency verifies the trial balance and every account's
// running balance.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context(), tenantID(r))
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}

		writeDomainError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
