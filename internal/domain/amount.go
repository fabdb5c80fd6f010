package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is one signed monetary contribution within an entry. The stored
// value is never negative; the direction of effect is carried by the side
// discriminant, not by the value's sign.
type Amount struct {
	ID        string
	EntryID   string
	AccountID string
	Side      Side
	Value     decimal.Decimal
	CreatedAt time.Time
}

// NewAmount builds an amount for the given account. The value must be
// non-negative; the entry reference is set when the amount is attached to
// an entry.
func NewAmount(accountID string, side Side, value decimal.Decimal) (*Amount, error) {
	if accountID == "" {
		return nil, &MissingFieldError{Field: "account_id"}
	}

	if !side.Valid() {
		return nil, &InvalidArgumentError{Reason: "unknown amount side: " + string(side)}
	}

	if value.IsNegative() {
		return nil, &InvalidArgumentError{Reason: "amount value must not be negative"}
	}

	return &Amount{
		AccountID: accountID,
		Side:      side,
		Value:     value,
	}, nil
}

// NewAmountFromFloat builds an amount from a float input, rejecting NaN and
// infinite values before they can reach decimal conversion.
func NewAmountFromFloat(accountID string, side Side, value float64) (*Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &InvalidArgumentError{Reason: "amount value must be finite"}
	}

	return NewAmount(accountID, side, decimal.NewFromFloat(value))
}

// SignedEffect returns this amount's contribution to the given account's
// balance: +value when the amount sits on the account's normal balance
// side, -value otherwise. All balance aggregation routes through here so
// sign conventions live in exactly one place.
func (a *Amount) SignedEffect(account *Account) decimal.Decimal {
	if a.Side == account.NormalBalanceSide() {
		return a.Value
	}
	return a.Value.Neg()
}

// Amounts is a collection of amounts on one side of an entry.
type Amounts []*Amount

// Sum returns the raw same-side total. It works identically for persisted
// and in-memory amounts, which is what pre-commit validation relies on.
func (as Amounts) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, a := range as {
		total = total.Add(a.Value)
	}
	return total
}

// BalanceFor returns the collection's signed contribution to the given
// account's balance, counting only amounts that reference it.
func (as Amounts) BalanceFor(account *Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range as {
		if a.AccountID != account.ID {
			continue
		}
		total = total.Add(a.SignedEffect(account))
	}
	return total
}
