package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
	balanceUC   *BalanceUseCase
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository, accountRepo AccountRepository, balanceUC *BalanceUseCase) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		balanceUC:   balanceUC,
	}
}

// TrialBalanceResult holds the ledger-wide debit and credit totals.
type TrialBalanceResult struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Balanced    bool
	CheckedAt   time.Time
}

// TrialBalance sums every debit amount and every credit amount across the
// ledger. For a consistent ledger the two totals are exactly equal, since
// each committed entry contributes the same value to both sides.
func (uc *LedgerUseCase) TrialBalance(ctx context.Context, tenantID *string) (*TrialBalanceResult, error) {
	debitTotal, creditTotal, err := uc.ledgerRepo.TrialBalance(ctx, tenantID)
	if err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	return &TrialBalanceResult{
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Balanced:    debitTotal.Equal(creditTotal),
		CheckedAt:   time.Now().UTC(),
	}, nil
}

// CheckConsistency verifies the two ledger invariants:
//
//  1. the trial balance is level (sum of debit amounts == sum of credit
//     amounts), and
//  2. every account's running balance equals a full recomputation over
//     its amounts.
//
// It returns ErrInconsistentLedger with the offending accounts when either
// check fails.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context, tenantID *string) (*ConsistencyReport, error) {
	trial, err := uc.TrialBalance(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TrialBalance: trial,
		Consistent:   trial.Balanced,
	}

	offset := 0
	for {
		accounts, err := uc.accountRepo.List(ctx, tenantID, balancePageSize, offset)
		if err != nil {
			return nil, &domain.PersistenceError{Err: err}
		}

		for _, account := range accounts {
			result, err := uc.balanceUC.VerifyAccount(ctx, account.ID, tenantID)
			if err != nil {
				return nil, err
			}

			if !result.InAgreement {
				report.Consistent = false
				report.Disagreements = append(report.Disagreements, result)
			}
		}

		if len(accounts) < balancePageSize {
			break
		}

		offset += balancePageSize
	}

	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}

// ConsistencyReport is the outcome of a full ledger consistency check.
type ConsistencyReport struct {
	TrialBalance  *TrialBalanceResult
	Disagreements []*VerificationResult
	Consistent    bool
}
