package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/infrastructure/metrics"
)

// EntryUseCase owns the entry commit protocol: build, validate, persist
// atomically, maintain running balances.
type EntryUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	amountRepo  AmountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
	metrics     *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	amountRepo AmountRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		amountRepo:  amountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
		metrics:     m,
	}
}

// AmountInput is one debit or credit line of an entry being committed.
type AmountInput struct {
	AccountID string
	Value     decimal.Decimal
}

// CommitEntryInput represents input for committing an entry.
type CommitEntryInput struct {
	TenantID           *string
	Description        string
	Date               *time.Time
	Target             *domain.Reference
	CommercialDocument *domain.Reference
	Debits             []AmountInput
	Credits            []AmountInput
	Actor              string
}

// BuildEntry assembles an in-memory entry from flat debit/credit lines
// without touching storage. Malformed amounts fail construction
// immediately; balance invariants are checked later by Validate.
func (uc *EntryUseCase) BuildEntry(input CommitEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if err := domain.ValidateReference(input.Target, "target"); err != nil {
		return nil, err
	}

	if err := domain.ValidateReference(input.CommercialDocument, "commercial_document"); err != nil {
		return nil, err
	}

	entry := domain.NewEntry(input.Description)
	entry.TenantID = input.TenantID
	entry.Target = input.Target
	entry.CommercialDocument = input.CommercialDocument

	if input.Date != nil {
		entry.Date = domain.DateOnly(*input.Date)
	}

	for _, line := range input.Debits {
		if err := domain.ValidateValue(line.Value); err != nil {
			return nil, err
		}

		if _, err := entry.AddDebit(line.AccountID, line.Value); err != nil {
			return nil, err
		}
	}

	for _, line := range input.Credits {
		if err := domain.ValidateValue(line.Value); err != nil {
			return nil, err
		}

		if _, err := entry.AddCredit(line.AccountID, line.Value); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// CommitEntry validates and commits an entry. Validation failures are
// returned accumulated and nothing is persisted; on success the entry and
// all of its amounts become visible together with the updated running
// balances of the touched accounts.
func (uc *EntryUseCase) CommitEntry(ctx context.Context, input CommitEntryInput) (*domain.Entry, error) {
	entry, err := uc.BuildEntry(input)
	if err != nil {
		return nil, err
	}

	if err := uc.Commit(ctx, entry, input.Actor); err != nil {
		return entry, err
	}

	return entry, nil
}

// Commit runs the commit protocol for an already built entry.
func (uc *EntryUseCase) Commit(ctx context.Context, entry *domain.Entry, actor string) error {
	start := time.Now()

	if err := entry.Validate(start.UTC()); err != nil {
		uc.recordRejection(err)
		uc.auditRejection(ctx, entry, actor, err)
		return err
	}

	entry.ID = uc.idGen.Generate()

	commit := func() error { return uc.commitOnce(ctx, entry) }

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, commit)
	} else {
		err = commit()
	}

	if err != nil {
		// The entry stays retryable in memory; lookups keep their own
		// error identity, everything else is a storage failure.
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrTenantScope) {
			return err
		}

		return &domain.PersistenceError{Err: err}
	}

	entry.MarkCommitted(time.Now().UTC())
	uc.invalidateBalances(ctx, entry)
	uc.audit(ctx, entry, actor)

	if uc.metrics != nil {
		uc.metrics.EntriesCommitted.Inc()
		uc.metrics.CommitDuration.Observe(time.Since(start).Seconds())
	}

	return nil
}

func (uc *EntryUseCase) recordRejection(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.EntriesRejected.Inc()

	var violations domain.ValidationErrors
	if errors.As(err, &violations) {
		for _, violation := range violations {
			var ve *domain.ValidationError
			if errors.As(violation, &ve) {
				uc.metrics.ValidationFailures.WithLabelValues(ve.Code).Inc()
			}
		}
	}
}

func (uc *EntryUseCase) commitOnce(ctx context.Context, entry *domain.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	// Lock accounts in sorted order (deadlock prevention).
	accountIDs := entry.AccountIDs()
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs, entry.TenantID)
	if err != nil {
		return err
	}

	if len(accounts) != len(accountIDs) {
		return domain.ErrAccountNotFound
	}

	// The entry row carries its creation time into storage, so the stamp
	// must be set before the insert, not when the commit is sealed.
	now := time.Now().UTC()
	entry.CreatedAt = now

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	for _, amount := range append(append(domain.Amounts{}, entry.Debits...), entry.Credits...) {
		amount.ID = uc.idGen.Generate()
		amount.EntryID = entry.ID
		amount.CreatedAt = now

		if err := uc.amountRepo.Create(ctx, tx, amount); err != nil {
			return err
		}
	}

	// Advance each touched account's running balance by the entry's signed
	// effect, inside the same transaction that makes the amounts visible.
	for _, account := range accounts {
		effect := entry.Debits.BalanceFor(account).Add(entry.Credits.BalanceFor(account))
		newBalance := account.Balance.Add(effect)

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, account.Version+1, now); err != nil {
			return err
		}

		account.Balance = newBalance
		account.Version++
	}

	return tx.Commit(ctx)
}

// GetEntry retrieves an entry with its amounts.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string, tenantID *string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	amounts, err := uc.amountRepo.ListByEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	for _, a := range amounts {
		if a.Side == domain.SideDebit {
			entry.Debits = append(entry.Debits, a)
		} else {
			entry.Credits = append(entry.Credits, a)
		}
	}

	return entry, nil
}

// ListEntries lists entries matching the filter, most recent date first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.entryRepo.List(ctx, filter)
}

// ListAmountsByAccount lists the amounts posted against one account.
func (uc *EntryUseCase) ListAmountsByAccount(ctx context.Context, q AmountQuery) (domain.Amounts, error) {
	q.Limit, q.Offset = domain.ValidatePagination(q.Limit, q.Offset)

	return uc.amountRepo.Query(ctx, q)
}

func (uc *EntryUseCase) invalidateBalances(ctx context.Context, entry *domain.Entry) {
	if uc.cache == nil {
		return
	}

	for _, accountID := range entry.AccountIDs() {
		_ = uc.cache.Delete(ctx, balanceCacheKey(accountID, entry.TenantID))
	}
}

func (uc *EntryUseCase) audit(ctx context.Context, entry *domain.Entry, actor string) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Actor:        actor,
		Action:       string(domain.AuditActionEntryCommit),
		ResourceType: "entry",
		ResourceID:   entry.ID,
		AfterState:   domain.MarshalState(entry),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

// auditRejection records a failed commit attempt. The entry was never
// persisted, so the log row carries the rejected state and the violation
// text instead of a resource ID.
func (uc *EntryUseCase) auditRejection(ctx context.Context, entry *domain.Entry, actor string, cause error) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Actor:        actor,
		Action:       string(domain.AuditActionEntryReject),
		ResourceType: "entry",
		ResourceID:   entry.ID,
		AfterState:   domain.MarshalState(entry),
		Status:       string(domain.AuditStatusFailure),
		ErrorMessage: cause.Error(),
		CreatedAt:    time.Now().UTC(),
	})
}

func balanceCacheKey(accountID string, tenantID *string) string {
	if tenantID != nil {
		return "balance:" + *tenantID + ":" + accountID
	}
	return "balance:" + accountID
}
