
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
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

type Amount struct {
	ID        string             `json:"id"`
	EntryID   string             `json:"entry_id"`
	AccountID string             `json:"account_id"`
	Side      string             `json:"side"`
	Value     pgtype.Numeric     `json:"value"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type AuditLog struct {
	ID           string             `json:"id"`
	Actor        string             `json:"actor"`
	Action       string             `json:"action"`
	ResourceType string             `json:"resource_type"`
	ResourceID   string             `json:"resource_id"`
	BeforeState  []byte             `json:"before_state"`
	AfterState   []byte             `json:"after_state"`
	Status       string             `json:"status"`
	ErrorMessage pgtype.Text        `json:"error_message"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Entry struct {
	ID                     string             `json:"id"`
	TenantID               pgtype.Text        `json:"tenant_id"`
	Description            string             `json:"description"`
	EntryDate              pgtype.Date        `json:"entry_date"`
	State                  string             `json:"state"`
	TargetKind             pgtype.Text        `json:"target_kind"`
	TargetID               pgtype.Text        `json:"target_id"`
	CommercialDocumentKind pgtype.Text        `json:"commercial_document_kind"`
	CommercialDocumentID   pgtype.Text        `json:"commercial_document_id"`
	CreatedAt              pgtype.Timestamptz `json:"created_at"`
}
