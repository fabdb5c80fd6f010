package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDescriptionLength = 1024
	// MaxAmountValue bounds stored values to the NUMERIC(30,10) column:
	// 20 integer digits, 10 fractional digits.
	MaxAmountValue = "99999999999999999999"
)

// hasText reports whether s contains any non-whitespace character.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateAccountName validates an account name.
func ValidateAccountName(name string) error {
	if !hasText(name) {
		return &MissingFieldError{Field: "name"}
	}

	if len(name) > MaxAccountNameLength {
		return &InvalidArgumentError{Reason: fmt.Sprintf("account name exceeds %d characters", MaxAccountNameLength)}
	}

	return nil
}

// ValidateDescription validates an entry description length. Presence is
// checked separately by Entry.Validate so the violation is reported as a
// missing field.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return &InvalidArgumentError{Reason: fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength)}
	}

	return nil
}

// ValidateValue checks that a monetary value fits the stored precision.
func ValidateValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return &InvalidArgumentError{Reason: "amount value must not be negative"}
	}

	maxValue, _ := decimal.NewFromString(MaxAmountValue)
	if value.GreaterThan(maxValue) {
		return &InvalidArgumentError{Reason: fmt.Sprintf("amount value exceeds maximum of %s", MaxAmountValue)}
	}

	return nil
}

// ValidateReference checks that a tagged reference is either absent or
// fully specified.
func ValidateReference(ref *Reference, field string) error {
	if ref == nil {
		return nil
	}

	if !hasText(ref.Kind) || !hasText(ref.ID) {
		return &InvalidArgumentError{Reason: field + " reference requires both kind and id"}
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
