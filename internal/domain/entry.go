package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryState tracks an entry through the commit protocol.
type EntryState string

const (
	// EntryStateBuilding is the only mutable state: amounts may be added
	// or removed while the entry is being assembled.
	EntryStateBuilding EntryState = "building"
	// EntryStateCommitted marks an entry persisted as an atomic unit with
	// all of its amounts. Committed entries are immutable history.
	EntryStateCommitted EntryState = "committed"
	// EntryStateRejected marks an entry whose validation failed. The entry
	// stays in memory with its violation list for correction and retry.
	EntryStateRejected EntryState = "rejected"
)

// Reference is a tagged pointer at a business object owned by the calling
// application, such as the invoice an entry documents. The core never
// resolves it.
type Reference struct {
	Kind string
	ID   string
}

// Entry is one transaction record: a balanced set of debit and credit
// amounts with a description and a date.
type Entry struct {
	ID                 string
	TenantID           *string
	Description        string
	Date               time.Time
	Target             *Reference
	CommercialDocument *Reference
	Debits             Amounts
	Credits            Amounts
	State              EntryState
	// Violations holds the accumulated failures from the last validation
	// attempt. Empty once the entry validates cleanly.
	Violations ValidationErrors
	CreatedAt  time.Time
}

// NewEntry starts an entry in the building state.
func NewEntry(description string) *Entry {
	return &Entry{
		Description: description,
		State:       EntryStateBuilding,
	}
}

// AddDebit attaches a debit amount for the given account.
func (e *Entry) AddDebit(accountID string, value decimal.Decimal) (*Amount, error) {
	return e.addAmount(accountID, SideDebit, value)
}

// AddCredit attaches a credit amount for the given account.
func (e *Entry) AddCredit(accountID string, value decimal.Decimal) (*Amount, error) {
	return e.addAmount(accountID, SideCredit, value)
}

func (e *Entry) addAmount(accountID string, side Side, value decimal.Decimal) (*Amount, error) {
	if e.State == EntryStateCommitted {
		return nil, &InvalidStateError{Reason: "cannot add amounts to a committed entry"}
	}

	amount, err := NewAmount(accountID, side, value)
	if err != nil {
		return nil, err
	}

	amount.EntryID = e.ID

	if side == SideDebit {
		e.Debits = append(e.Debits, amount)
	} else {
		e.Credits = append(e.Credits, amount)
	}

	// Editing after a rejection reopens the entry.
	e.State = EntryStateBuilding

	return amount, nil
}

// RemoveAmount detaches an amount while the entry is still being built.
func (e *Entry) RemoveAmount(amount *Amount) error {
	if e.State == EntryStateCommitted {
		return &InvalidStateError{Reason: "cannot remove amounts from a committed entry"}
	}

	remove := func(as Amounts) Amounts {
		out := as[:0]
		for _, a := range as {
			if a != amount {
				out = append(out, a)
			}
		}
		return out
	}

	if amount.Side == SideDebit {
		e.Debits = remove(e.Debits)
	} else {
		e.Credits = remove(e.Credits)
	}

	e.State = EntryStateBuilding

	return nil
}

// Balanced reports whether debit and credit totals agree, by exact decimal
// comparison.
func (e *Entry) Balanced() bool {
	return e.Debits.Sum().Equal(e.Credits.Sum())
}

// AccountIDs returns the distinct accounts referenced by either side.
func (e *Entry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Debits)+len(e.Credits))
	ids := make([]string, 0, len(e.Debits)+len(e.Credits))

	for _, a := range append(append(Amounts{}, e.Debits...), e.Credits...) {
		if _, ok := seen[a.AccountID]; ok {
			continue
		}
		seen[a.AccountID] = struct{}{}
		ids = append(ids, a.AccountID)
	}

	return ids
}

// Validate runs every commit-time check and accumulates all violations, so
// a single attempt reports everything that is wrong:
//
//   - the description must be non-blank
//   - at least one debit amount and one credit amount must be present
//   - debit and credit totals must be exactly equal
//
// A zero date is defaulted to the current day before the checks run. On
// failure the entry moves to the rejected state and keeps the violation
// list; fixing the inputs and validating again is allowed.
func (e *Entry) Validate(now time.Time) error {
	if e.State == EntryStateCommitted {
		return &InvalidStateError{Reason: "entry is already committed"}
	}

	if e.Date.IsZero() {
		e.Date = DateOnly(now)
	}

	var violations ValidationErrors

	if !hasText(e.Description) {
		violations = append(violations, &MissingFieldError{Field: "description"})
	}

	if len(e.Debits) == 0 {
		violations = append(violations, &ValidationError{Code: CodeAtLeastOneDebitAmount})
	}

	if len(e.Credits) == 0 {
		violations = append(violations, &ValidationError{Code: CodeAtLeastOneCreditAmount})
	}

	if !e.Balanced() {
		violations = append(violations, &ValidationError{Code: CodeAmountsNotEqual})
	}

	if len(violations) > 0 {
		e.State = EntryStateRejected
		e.Violations = violations
		return violations
	}

	e.Violations = nil

	return nil
}

// MarkCommitted seals the entry after its atomic write succeeded. A
// creation time stamped at persist time is kept; at is only a fallback.
func (e *Entry) MarkCommitted(at time.Time) {
	e.State = EntryStateCommitted
	if e.CreatedAt.IsZero() {
		e.CreatedAt = at
	}
}

// DateOnly truncates a time to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
