package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bookledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new entry inside an open transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	targetKind, targetID := referenceColumns(entry.Target)
	documentKind, documentID := referenceColumns(entry.CommercialDocument)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:                     entry.ID,
		TenantID:               textFromPtr(entry.TenantID),
		Description:            entry.Description,
		EntryDate:              dateToPgDate(entry.Date),
		State:                  string(domain.EntryStateCommitted),
		TargetKind:             targetKind,
		TargetID:               targetID,
		CommercialDocumentKind: documentKind,
		CommercialDocumentID:   documentID,
		CreatedAt:              timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByID retrieves an entry by ID, scoped by tenant when one is given.
// Amounts are not loaded here; the caller fetches them separately.
func (r *EntryRepository) GetByID(ctx context.Context, id string, tenantID *string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, generated.GetEntryByIDParams{
		ID:       id,
		TenantID: textFromPtr(tenantID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// List lists entries matching the filter, most recent entry date first.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntries(ctx, generated.ListEntriesParams{
		TenantID:               textFromPtr(filter.TenantID),
		TargetKind:             textFromPtr(filter.TargetKind),
		TargetID:               textFromPtr(filter.TargetID),
		CommercialDocumentKind: textFromPtr(filter.CommercialDocumentKind),
		CommercialDocumentID:   textFromPtr(filter.CommercialDocumentID),
		FromDate:               dateFromPtr(filter.From),
		ToDate:                 dateFromPtr(filter.To),
		Limit:                  int32(filter.Limit),
		Offset:                 int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:                 row.ID,
		TenantID:           ptrFromText(row.TenantID),
		Description:        row.Description,
		Date:               row.EntryDate.Time,
		State:              domain.EntryState(row.State),
		Target:             referenceFromColumns(row.TargetKind, row.TargetID),
		CommercialDocument: referenceFromColumns(row.CommercialDocumentKind, row.CommercialDocumentID),
		CreatedAt:          row.CreatedAt.Time,
	}
}

func referenceColumns(ref *domain.Reference) (kind, id pgtype.Text) {
	if ref == nil {
		return pgtype.Text{}, pgtype.Text{}
	}

	return pgtype.Text{String: ref.Kind, Valid: true}, pgtype.Text{String: ref.ID, Valid: true}
}

func referenceFromColumns(kind, id pgtype.Text) *domain.Reference {
	if !kind.Valid {
		return nil
	}

	return &domain.Reference{Kind: kind.String, ID: id.String}
}
