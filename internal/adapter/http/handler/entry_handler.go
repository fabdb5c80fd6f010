package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookledger/internal/adapter/http/dto"
	"github.com/iho/bookledger/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Commit validates and commits an entry.
func (h *EntryHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.CommitEntry(r.Context(), req.ToUseCaseInput(tenantID(r), actor(r)))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry with its amounts.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id, tenantID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists entries, most recent date first. Supports filtering by
// target, commercial document and date range.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.EntryFilter{
		TenantID: tenantID(r),
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	q := r.URL.Query()
	if kind := q.Get("target_kind"); kind != "" {
		filter.TargetKind = &kind
	}
	if id := q.Get("target_id"); id != "" {
		filter.TargetID = &id
	}
	if kind := q.Get("document_kind"); kind != "" {
		filter.CommercialDocumentKind = &kind
	}
	if id := q.Get("document_id"); id != "" {
		filter.CommercialDocumentID = &id
	}

	var badDate string
	if from, ok := parseDateQuery(r, "from", &badDate); ok {
		filter.From = from
	}
	if to, ok := parseDateQuery(r, "to", &badDate); ok {
		filter.To = to
	}
	if badDate != "" {
		writeError(w, http.StatusBadRequest, "invalid date parameter", badDate)
		return
	}

	entries, err := h.entryUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListAmountsByAccount lists the amounts posted against an account.
func (h *EntryHandler) ListAmountsByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	query := usecase.AmountQuery{
		AccountID: accountID,
		TenantID:  tenantID(r),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	var badDate string
	if from, ok := parseDateQuery(r, "from", &badDate); ok {
		query.From = from
	}
	if to, ok := parseDateQuery(r, "to", &badDate); ok {
		query.To = to
	}
	if badDate != "" {
		writeError(w, http.StatusBadRequest, "invalid date parameter", badDate)
		return
	}

	amounts, err := h.entryUC.ListAmountsByAccount(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := make([]map[string]any, len(amounts))
	for i, a := range amounts {
		result[i] = map[string]any{
			"id":         a.ID,
			"entry_id":   a.EntryID,
			"account_id": a.AccountID,
			"side":       a.Side,
			"value":      a.Value,
			"created_at": a.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// parseDateQuery parses a date query parameter in YYYY-MM-DD form. On a
// malformed value it records the parameter name in badDate.
func parseDateQuery(r *http.Request, key string, badDate *string) (*time.Time, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, false
	}

	t, err := time.Parse(time.DateOnly, val)
	if err != nil {
		*badDate = key
		return nil, false
	}

	return &t, true
}
