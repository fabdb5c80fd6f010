package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Contra          bool    `json:"contra"`
	Code            *int64  `json:"code,omitempty"`
	RollupCode      *int64  `json:"rollup_code,omitempty"`
	ParentAccountID *string `json:"parent_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(tenantID *string, actor string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		TenantID:        tenantID,
		Name:            r.Name,
		Type:            domain.AccountType(r.Type),
		Contra:          r.Contra,
		Code:            r.Code,
		RollupCode:      r.RollupCode,
		ParentAccountID: r.ParentAccountID,
		Actor:           actor,
	}
}

// ChangeAccountTypeRequest represents a request to change an account's type.
type ChangeAccountTypeRequest struct {
	Type   string `json:"type"`
	Contra bool   `json:"contra"`
}

// ReferenceRequest identifies an external object linked to an entry.
type ReferenceRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (r *ReferenceRequest) toDomain() *domain.Reference {
	if r == nil {
		return nil
	}

	return &domain.Reference{Kind: r.Kind, ID: r.ID}
}

// AmountRequest is one debit or credit line of an entry.
type AmountRequest struct {
	AccountID string          `json:"account_id"`
	Value     decimal.Decimal `json:"value"`
}

// CommitEntryRequest represents a request to commit an entry.
type CommitEntryRequest struct {
	Description        string            `json:"description"`
	Date               *time.Time        `json:"date,omitempty"`
	Target             *ReferenceRequest `json:"target,omitempty"`
	CommercialDocument *ReferenceRequest `json:"commercial_document,omitempty"`
	Debits             []AmountRequest   `json:"debits"`
	Credits            []AmountRequest   `json:"credits"`
}

// ToUseCaseInput converts to use case input.
func (r *CommitEntryRequest) ToUseCaseInput(tenantID *string, actor string) usecase.CommitEntryInput {
	debits := make([]usecase.AmountInput, len(r.Debits))
	for i, d := range r.Debits {
		debits[i] = usecase.AmountInput{AccountID: d.AccountID, Value: d.Value}
	}

	credits := make([]usecase.AmountInput, len(r.Credits))
	for i, c := range r.Credits {
		credits[i] = usecase.AmountInput{AccountID: c.AccountID, Value: c.Value}
	}

	return usecase.CommitEntryInput{
		TenantID:           tenantID,
		Description:        r.Description,
		Date:               r.Date,
		Target:             r.Target.toDomain(),
		CommercialDocument: r.CommercialDocument.toDomain(),
		Debits:             debits,
		Credits:            credits,
		Actor:              actor,
	}
}
