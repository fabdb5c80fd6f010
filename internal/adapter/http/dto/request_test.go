package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
)

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	code := int64(1000)
	parent := "acc-parent"
	tenant := "acme"

	req := &CreateAccountRequest{
		Name:            "Accumulated Depreciation",
		Type:            "asset",
		Contra:          true,
		Code:            &code,
		ParentAccountID: &parent,
	}

	got := req.ToUseCaseInput(&tenant, "alice")

	if got.Name != "Accumulated Depreciation" || got.Type != domain.AccountTypeAsset || !got.Contra {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Code == nil || *got.Code != 1000 {
		t.Fatalf("expected code 1000, got %v", got.Code)
	}
	if got.ParentAccountID == nil || *got.ParentAccountID != "acc-parent" {
		t.Fatalf("expected parent acc-parent, got %v", got.ParentAccountID)
	}
	if got.TenantID == nil || *got.TenantID != "acme" {
		t.Fatalf("expected tenant acme, got %v", got.TenantID)
	}
	if got.Actor != "alice" {
		t.Fatalf("expected actor alice, got %s", got.Actor)
	}
}

func TestCreateAccountRequest_ToUseCaseInput_NoTenant(t *testing.T) {
	req := &CreateAccountRequest{Name: "Cash", Type: "asset"}

	got := req.ToUseCaseInput(nil, "")
	if got.TenantID != nil {
		t.Fatalf("expected nil tenant, got %v", got.TenantID)
	}
	if got.RollupCode != nil || got.ParentAccountID != nil {
		t.Fatalf("expected optional fields to stay nil: %+v", got)
	}
}

func TestCommitEntryRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	req := &CommitEntryRequest{
		Description: "Invoice 42 settled",
		Date:        &date,
		Target: &ReferenceRequest{
			Kind: "invoice",
			ID:   "inv-42",
		},
		Debits: []AmountRequest{
			{AccountID: "acc-cash", Value: decimal.RequireFromString("100.50")},
		},
		Credits: []AmountRequest{
			{AccountID: "acc-revenue", Value: decimal.RequireFromString("100.50")},
		},
	}

	got := req.ToUseCaseInput(nil, "bob")

	if got.Description != "Invoice 42 settled" || got.Actor != "bob" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Date == nil || !got.Date.Equal(date) {
		t.Fatalf("expected date to propagate, got %v", got.Date)
	}
	if got.Target == nil || got.Target.Kind != "invoice" || got.Target.ID != "inv-42" {
		t.Fatalf("expected target reference, got %+v", got.Target)
	}
	if got.CommercialDocument != nil {
		t.Fatalf("expected nil commercial document, got %+v", got.CommercialDocument)
	}
	if len(got.Debits) != 1 || got.Debits[0].AccountID != "acc-cash" {
		t.Fatalf("unexpected debits: %+v", got.Debits)
	}
	if !got.Debits[0].Value.Equal(decimal.RequireFromString("100.50")) {
		t.Fatalf("expected debit value 100.50, got %s", got.Debits[0].Value)
	}
	if len(got.Credits) != 1 || got.Credits[0].AccountID != "acc-revenue" {
		t.Fatalf("unexpected credits: %+v", got.Credits)
	}
}

func TestCommitEntryRequest_ToUseCaseInput_EmptyAmounts(t *testing.T) {
	req := &CommitEntryRequest{Description: "empty"}

	got := req.ToUseCaseInput(nil, "")
	if len(got.Debits) != 0 || len(got.Credits) != 0 {
		t.Fatalf("expected empty amount slices, got %+v", got)
	}
}
