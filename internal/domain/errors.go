package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountTypeInUse = errors.New("account type cannot change while amounts reference the account")
	ErrRollupCycle      = errors.New("rollup parent chain contains a cycle")

	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrTenantScope   = errors.New("record belongs to a different tenant")
)

// Validation codes reported by Entry.Validate.
const (
	CodeAtLeastOneDebitAmount  = "at_least_one_debit_amount"
	CodeAtLeastOneCreditAmount = "at_least_one_credit_amount"
	CodeAmountsNotEqual        = "amounts_are_not_equal"
)

// MissingFieldError reports a required attribute that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// ValidationError reports a violated domain invariant by stable code.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Code)
}

// InvalidArgumentError reports a malformed input value, such as a negative
// or non-finite amount.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// InvalidStateError reports an operation attempted in a state that does not
// permit it, such as mutating a committed entry.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Reason)
}

// PersistenceError wraps a storage failure surfaced during commit. The
// underlying driver error is preserved, never reinterpreted.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationErrors accumulates every violated commit-time check so one
// attempt reports all problems at once.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is and errors.As inspect the accumulated violations.
func (v ValidationErrors) Unwrap() []error {
	return v
}

// HasCode reports whether the accumulated violations contain the given
// validation code.
func (v ValidationErrors) HasCode(code string) bool {
	for _, err := range v {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Code == code {
			return true
		}
	}
	return false
}
