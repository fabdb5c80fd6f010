package domain

import (
	"testing"
)

func TestAccountType_NormalBalanceSide(t *testing.T) {
	tests := []struct {
		accountType AccountType
		want        Side
	}{
		{AccountTypeAsset, SideDebit},
		{AccountTypeExpense, SideDebit},
		{AccountTypeLiability, SideCredit},
		{AccountTypeEquity, SideCredit},
		{AccountTypeRevenue, SideCredit},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			if got := tt.accountType.NormalBalanceSide(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccount_NormalBalanceSide_Contra(t *testing.T) {
	tests := []struct {
		name        string
		accountType AccountType
		contra      bool
		want        Side
	}{
		{"asset", AccountTypeAsset, false, SideDebit},
		{"contra asset behaves like a liability", AccountTypeAsset, true, SideCredit},
		{"liability", AccountTypeLiability, false, SideCredit},
		{"contra liability", AccountTypeLiability, true, SideDebit},
		{"contra revenue", AccountTypeRevenue, true, SideDebit},
		{"contra expense", AccountTypeExpense, true, SideCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Name: "x", Type: tt.accountType, Contra: tt.contra}

			if got := acc.NormalBalanceSide(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccount_Validate(t *testing.T) {
	self := "acc-1"

	tests := []struct {
		name        string
		account     Account
		expectError bool
	}{
		{
			name:        "valid",
			account:     Account{ID: "acc-1", Name: "Cash", Type: AccountTypeAsset},
			expectError: false,
		},
		{
			name:        "blank name",
			account:     Account{ID: "acc-1", Name: "   ", Type: AccountTypeAsset},
			expectError: true,
		},
		{
			name:        "unknown type",
			account:     Account{ID: "acc-1", Name: "Cash", Type: AccountType("other")},
			expectError: true,
		},
		{
			name:        "self as rollup parent",
			account:     Account{ID: "acc-1", Name: "Cash", Type: AccountTypeAsset, ParentAccountID: &self},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSide_Opposite(t *testing.T) {
	if SideDebit.Opposite() != SideCredit {
		t.Error("expected credit")
	}

	if SideCredit.Opposite() != SideDebit {
		t.Error("expected debit")
	}
}
