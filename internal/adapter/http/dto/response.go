package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string          `json:"id"`
	TenantID        *string         `json:"tenant_id,omitempty"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Contra          bool            `json:"contra"`
	NormalBalance   string          `json:"normal_balance"`
	Code            *int64          `json:"code,omitempty"`
	RollupCode      *int64          `json:"rollup_code,omitempty"`
	ParentAccountID *string         `json:"parent_account_id,omitempty"`
	Balance         decimal.Decimal `json:"balance"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		Name:            a.Name,
		Type:            string(a.Type),
		Contra:          a.Contra,
		NormalBalance:   string(a.NormalBalanceSide()),
		Code:            a.Code,
		RollupCode:      a.RollupCode,
		ParentAccountID: a.ParentAccountID,
		Balance:         a.Balance,
		Version:         a.Version,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ReferenceResponse identifies an external object linked to an entry.
type ReferenceResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func referenceFromDomain(ref *domain.Reference) *ReferenceResponse {
	if ref == nil {
		return nil
	}

	return &ReferenceResponse{Kind: ref.Kind, ID: ref.ID}
}

// AmountResponse represents one debit or credit line.
type AmountResponse struct {
	ID        string          `json:"id,omitempty"`
	AccountID string          `json:"account_id"`
	Value     decimal.Decimal `json:"value"`
}

func amountsFromDomain(amounts domain.Amounts) []*AmountResponse {
	result := make([]*AmountResponse, len(amounts))
	for i, a := range amounts {
		result[i] = &AmountResponse{
			ID:        a.ID,
			AccountID: a.AccountID,
			Value:     a.Value,
		}
	}
	return result
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID                 string             `json:"id"`
	TenantID           *string            `json:"tenant_id,omitempty"`
	Description        string             `json:"description"`
	Date               string             `json:"date"`
	State              string             `json:"state"`
	Target             *ReferenceResponse `json:"target,omitempty"`
	CommercialDocument *ReferenceResponse `json:"commercial_document,omitempty"`
	Debits             []*AmountResponse  `json:"debits"`
	Credits            []*AmountResponse  `json:"credits"`
	CreatedAt          time.Time          `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:                 e.ID,
		TenantID:           e.TenantID,
		Description:        e.Description,
		Date:               e.Date.Format(time.DateOnly),
		State:              string(e.State),
		Target:             referenceFromDomain(e.Target),
		CommercialDocument: referenceFromDomain(e.CommercialDocument),
		Debits:             amountsFromDomain(e.Debits),
		Credits:            amountsFromDomain(e.Credits),
		CreatedAt:          e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// BalanceResponse represents a computed account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *string         `json:"as_of,omitempty"`
	Rollup    bool            `json:"rollup,omitempty"`
}

// VerificationResponse reports running vs recomputed balance agreement.
type VerificationResponse struct {
	AccountID       string          `json:"account_id"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
	InAgreement     bool            `json:"in_agreement"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// VerificationFromResult converts a verification result to a response.
func VerificationFromResult(r *usecase.VerificationResult) *VerificationResponse {
	return &VerificationResponse{
		AccountID:       r.AccountID,
		RunningBalance:  r.RunningBalance,
		ComputedBalance: r.ComputedBalance,
		Difference:      r.Difference,
		InAgreement:     r.InAgreement,
		CheckedAt:       r.CheckedAt,
	}
}

// TrialBalanceResponse represents the ledger-wide totals.
type TrialBalanceResponse struct {
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Balanced    bool            `json:"balanced"`
	CheckedAt   time.Time       `json:"checked_at"`
}

// ConsistencyResponse represents a full ledger consistency check.
type ConsistencyResponse struct {
	Consistent    bool                    `json:"consistent"`
	TrialBalance  *TrialBalanceResponse   `json:"trial_balance"`
	Disagreements []*VerificationResponse `json:"disagreements,omitempty"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	disagreements := make([]*VerificationResponse, len(report.Disagreements))
	for i, d := range report.Disagreements {
		disagreements[i] = VerificationFromResult(d)
	}

	return &ConsistencyResponse{
		Consistent: report.Consistent,
		TrialBalance: &TrialBalanceResponse{
			DebitTotal:  report.TrialBalance.DebitTotal,
			CreditTotal: report.TrialBalance.CreditTotal,
			Balanced:    report.TrialBalance.Balanced,
			CheckedAt:   report.TrialBalance.CheckedAt,
		},
		Disagreements: disagreements,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	Violations []string `json:"violations,omitempty"`
}
