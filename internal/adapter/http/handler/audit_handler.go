package handler

import (
	"net/http"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
)

// AuditHandler handles audit log HTTP requests.
type AuditHandler struct {
	auditRepo usecase.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditRepo usecase.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// List lists audit logs, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	logs, err := h.auditRepo.List(r.Context(), domain.AuditFilter{
		Actor:        q.Get("actor"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 50),
		Offset:       parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
