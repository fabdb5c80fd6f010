package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
)

// AccountUseCase handles chart-of-accounts business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	amountRepo  AmountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	amountRepo AmountRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		amountRepo:  amountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	TenantID        *string
	Name            string
	Type            domain.AccountType
	Contra          bool
	Code            *int64
	RollupCode      *int64
	ParentAccountID *string
	Actor           string
}

// CreateAccount creates a new chart-of-accounts node.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:              uc.idGen.Generate(),
		TenantID:        input.TenantID,
		Name:            input.Name,
		Type:            input.Type,
		Contra:          input.Contra,
		Code:            input.Code,
		RollupCode:      input.RollupCode,
		ParentAccountID: input.ParentAccountID,
		Balance:         decimal.Zero,
		Version:         0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if input.ParentAccountID != nil {
		if _, err := uc.accountRepo.GetByID(ctx, *input.ParentAccountID, input.TenantID); err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	uc.audit(ctx, input.Actor, domain.AuditActionAccountCreate, account.ID, nil, account)

	return account, nil
}

// GetAccount retrieves an account by ID, scoped by tenant when one is given.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string, tenantID *string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id, tenantID)
}

// FindAccounts looks accounts up by name+type pair, code, or rollup code.
func (uc *AccountUseCase) FindAccounts(ctx context.Context, filter AccountFilter) ([]*domain.Account, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.accountRepo.Find(ctx, filter)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	TenantID *string
	Limit    int
	Offset   int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, input.TenantID, limit, offset)
}

// ChangeAccountTypeInput represents input for changing an account's type.
type ChangeAccountTypeInput struct {
	AccountID string
	TenantID  *string
	Type      domain.AccountType
	Contra    bool
	Actor     string
}

// ChangeAccountType changes an account's type. The change is rejected once
// any amount references the account, because reclassifying would silently
// reinterpret every historical balance.
func (uc *AccountUseCase) ChangeAccountType(ctx context.Context, input ChangeAccountTypeInput) (*domain.Account, error) {
	if !input.Type.Valid() {
		return nil, &domain.InvalidArgumentError{Reason: "unknown account type: " + string(input.Type)}
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID, input.TenantID)
	if err != nil {
		return nil, err
	}

	count, err := uc.amountRepo.CountByAccount(ctx, account.ID)
	if err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	if count > 0 {
		return nil, &domain.InvalidStateError{Reason: domain.ErrAccountTypeInUse.Error()}
	}

	before := *account

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateType(ctx, account.ID, input.Type, input.Contra, now); err != nil {
		return nil, &domain.PersistenceError{Err: err}
	}

	account.Type = input.Type
	account.Contra = input.Contra
	account.UpdatedAt = now

	uc.audit(ctx, input.Actor, domain.AuditActionAccountTypeChange, account.ID, &before, account)

	return account, nil
}

func (uc *AccountUseCase) audit(ctx context.Context, actor string, action domain.AuditAction, accountID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	// Audit writes are best-effort outside the commit path.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Actor:        actor,
		Action:       string(action),
		ResourceType: "account",
		ResourceID:   accountID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
