package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the accounting side an amount is recorded on.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Opposite returns the other accounting side.
func (s Side) Opposite() Side {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// AccountType classifies a chart-of-accounts node. The type fixes the
// account's normal balance side and is immutable once any amount references
// the account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// NormalBalanceSide returns the side whose amounts increase a balance of
// this type. Asset and expense accounts grow on the debit side; liability,
// equity and revenue accounts grow on the credit side.
func (t AccountType) NormalBalanceSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account represents a node in the chart of accounts.
type Account struct {
	ID              string
	TenantID        *string
	Name            string
	Type            AccountType
	Contra          bool
	Code            *int64
	RollupCode      *int64
	ParentAccountID *string
	// Balance is the running balance maintained inside the same transaction
	// that commits each entry. It must always equal a full recomputation
	// over the account's amounts.
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalBalanceSide returns the side that increases this account's balance.
// A contra account reverses its type's default side.
func (a *Account) NormalBalanceSide() Side {
	side := a.Type.NormalBalanceSide()
	if a.Contra {
		return side.Opposite()
	}
	return side
}

// Validate checks the account's own attributes.
func (a *Account) Validate() error {
	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if !a.Type.Valid() {
		return &InvalidArgumentError{Reason: "unknown account type: " + string(a.Type)}
	}

	if a.ParentAccountID != nil && *a.ParentAccountID == a.ID {
		return ErrRollupCycle
	}

	return nil
}
