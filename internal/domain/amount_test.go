package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name        string
		accountID   string
		side        Side
		value       decimal.Decimal
		expectError bool
	}{
		{
			name:      "valid debit",
			accountID: "acc-1",
			side:      SideDebit,
			value:     decimal.NewFromInt(100),
		},
		{
			name:      "zero value is allowed",
			accountID: "acc-1",
			side:      SideCredit,
			value:     decimal.Zero,
		},
		{
			name:        "negative value",
			accountID:   "acc-1",
			side:        SideDebit,
			value:       decimal.NewFromInt(-1),
			expectError: true,
		},
		{
			name:        "missing account",
			accountID:   "",
			side:        SideDebit,
			value:       decimal.NewFromInt(1),
			expectError: true,
		},
		{
			name:        "unknown side",
			accountID:   "acc-1",
			side:        Side("both"),
			value:       decimal.NewFromInt(1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := NewAmount(tt.accountID, tt.side, tt.value)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !amount.Value.Equal(tt.value) {
				t.Errorf("expected value %s, got %s", tt.value, amount.Value)
			}
		})
	}
}

func TestNewAmountFromFloat_NonFinite(t *testing.T) {
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewAmountFromFloat("acc-1", SideDebit, value)

		var argErr *InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("value %v: expected InvalidArgumentError, got %v", value, err)
		}
	}
}

func TestAmount_SignedEffect(t *testing.T) {
	value := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		accountType AccountType
		contra      bool
		side        Side
		want        decimal.Decimal
	}{
		{"debit increases an asset", AccountTypeAsset, false, SideDebit, value},
		{"credit decreases an asset", AccountTypeAsset, false, SideCredit, value.Neg()},
		{"debit decreases a liability", AccountTypeLiability, false, SideDebit, value.Neg()},
		{"credit increases a liability", AccountTypeLiability, false, SideCredit, value},
		{"credit increases revenue", AccountTypeRevenue, false, SideCredit, value},
		{"debit increases an expense", AccountTypeExpense, false, SideDebit, value},
		{"contra asset inverts like a liability", AccountTypeAsset, true, SideDebit, value.Neg()},
		{"contra asset credit side", AccountTypeAsset, true, SideCredit, value},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &Account{ID: "acc-1", Name: "x", Type: tt.accountType, Contra: tt.contra}
			amount := &Amount{AccountID: "acc-1", Side: tt.side, Value: value}

			if got := amount.SignedEffect(account); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAmounts_Sum(t *testing.T) {
	amounts := Amounts{
		{AccountID: "acc-1", Side: SideDebit, Value: decimal.RequireFromString("10.25")},
		{AccountID: "acc-2", Side: SideDebit, Value: decimal.RequireFromString("89.75")},
	}

	if got := amounts.Sum(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100, got %s", got)
	}

	if got := (Amounts{}).Sum(); !got.Equal(decimal.Zero) {
		t.Errorf("expected zero for empty set, got %s", got)
	}
}

func TestAmounts_BalanceFor(t *testing.T) {
	cash := &Account{ID: "cash", Name: "Cash", Type: AccountTypeAsset}

	amounts := Amounts{
		{AccountID: "cash", Side: SideDebit, Value: decimal.NewFromInt(1000)},
		{AccountID: "cash", Side: SideCredit, Value: decimal.NewFromInt(250)},
		{AccountID: "other", Side: SideDebit, Value: decimal.NewFromInt(9999)},
	}

	if got := amounts.BalanceFor(cash); !got.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected 750, got %s", got)
	}
}
