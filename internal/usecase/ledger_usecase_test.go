package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/usecase"
	"github.com/iho/bookledger/internal/usecase/mocks"
)

func newLedgerUseCase(ctrl *gomock.Controller) (
	*usecase.LedgerUseCase,
	*mocks.MockLedgerRepository,
	*mocks.MockAccountRepository,
	*mocks.MockAmountRepository,
) {
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	amountRepo := mocks.NewMockAmountRepository(ctrl)

	balanceUC := usecase.NewBalanceUseCase(accountRepo, amountRepo, nil)
	uc := usecase.NewLedgerUseCase(ledgerRepo, accountRepo, balanceUC)

	return uc, ledgerRepo, accountRepo, amountRepo
}

func TestLedgerUseCase_TrialBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledgerRepo, _, _ := newLedgerUseCase(ctrl)

	ledgerRepo.EXPECT().TrialBalance(gomock.Any(), gomock.Nil()).
		Return(decimal.NewFromInt(1500), decimal.NewFromInt(1500), nil)

	result, err := uc.TrialBalance(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Balanced {
		t.Errorf("expected balanced trial, debit %s credit %s", result.DebitTotal, result.CreditTotal)
	}
}

func TestLedgerUseCase_TrialBalance_Uneven(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledgerRepo, _, _ := newLedgerUseCase(ctrl)

	ledgerRepo.EXPECT().TrialBalance(gomock.Any(), gomock.Nil()).
		Return(decimal.NewFromInt(1500), decimal.NewFromInt(1499), nil)

	result, err := uc.TrialBalance(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Balanced {
		t.Error("expected unbalanced trial")
	}
}

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledgerRepo, accountRepo, amountRepo := newLedgerUseCase(ctrl)

	ledgerRepo.EXPECT().TrialBalance(gomock.Any(), gomock.Nil()).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(100), nil)

	cash := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Balance: decimal.NewFromInt(100)}
	accountRepo.EXPECT().List(gomock.Any(), gomock.Nil(), gomock.Any(), 0).
		Return([]*domain.Account{cash}, nil)
	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).Return(cash, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
		{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(100)},
	}, nil)

	report, err := uc.CheckConsistency(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Consistent {
		t.Errorf("expected consistent ledger, disagreements: %d", len(report.Disagreements))
	}
}

func TestLedgerUseCase_CheckConsistency_Drift(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledgerRepo, accountRepo, amountRepo := newLedgerUseCase(ctrl)

	ledgerRepo.EXPECT().TrialBalance(gomock.Any(), gomock.Nil()).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(100), nil)

	// Running balance drifted away from the recorded amounts.
	cash := &domain.Account{ID: "cash", Name: "Cash", Type: domain.AccountTypeAsset, Balance: decimal.NewFromInt(90)}
	accountRepo.EXPECT().List(gomock.Any(), gomock.Nil(), gomock.Any(), 0).
		Return([]*domain.Account{cash}, nil)
	accountRepo.EXPECT().GetByID(gomock.Any(), "cash", gomock.Nil()).Return(cash, nil)
	amountRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(domain.Amounts{
		{AccountID: "cash", Side: domain.SideDebit, Value: decimal.NewFromInt(100)},
	}, nil)

	report, err := uc.CheckConsistency(context.Background(), nil)
	if !errors.Is(err, usecase.ErrInconsistentLedger) {
		t.Fatalf("expected ErrInconsistentLedger, got %v", err)
	}

	if len(report.Disagreements) != 1 {
		t.Fatalf("expected 1 disagreement, got %d", len(report.Disagreements))
	}

	if !report.Disagreements[0].Difference.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected difference -10, got %s", report.Disagreements[0].Difference)
	}
}
