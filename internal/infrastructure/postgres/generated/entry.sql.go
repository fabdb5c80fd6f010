
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createEntry = `-- name: CreateEntry :one
INSERT INTO entries (id, tenant_id, description, entry_date, state, target_kind, target_id, commercial_document_kind, commercial_document_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, tenant_id, description, entry_date, state, target_kind, target_id, commercial_document_kind, commercial_document_id, created_at
`

type CreateEntryParams struct {
	ID                     string             `json:"id"`
	TenantID               pgtype.Text        `json:"tenant_id"`
	Description            string             `json:"description"`
	EntryDate              pgtype.Date        `json:"entry_date"`
	State                  string             `json:"state"`
	TargetKind             pgtype.Text        `json:"target_kind"`
	TargetID               pgtype.Text        `json:"target_id"`
	CommercialDocumentKind pgtype.Text        `json:"commercial_document_kind"`
	CommercialDocumentID   pgtype.Text        `json:"commercial_document_id"`
	CreatedAt              pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.ID,
		arg.TenantID,
		arg.Description,
		arg.EntryDate,
		arg.State,
		arg.TargetKind,
		arg.TargetID,
		arg.CommercialDocumentKind,
		arg.CommercialDocumentID,
		arg.CreatedAt,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Description,
		&i.EntryDate,
		&i.State,
		&i.TargetKind,
		&i.TargetID,
		&i.CommercialDocumentKind,
		&i.CommercialDocumentID,
		&i.CreatedAt,
	)
	return i, err
}

const getEntryByID = `-- name: GetEntryByID :one
SELECT id, tenant_id, description, entry_date, state, target_kind, target_id, commercial_document_kind, commercial_document_id, created_at FROM entries
WHERE id = $1 AND ($2::text IS NULL OR tenant_id = $2::text)
`

type GetEntryByIDParams struct {
	ID       string      `json:"id"`
	TenantID pgtype.Text `json:"tenant_id"`
}

func (q *Queries) GetEntryByID(ctx context.Context, arg GetEntryByIDParams) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByID, arg.ID, arg.TenantID)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Description,
		&i.EntryDate,
		&i.State,
		&i.TargetKind,
		&i.TargetID,
		&i.CommercialDocumentKind,
		&i.CommercialDocumentID,
		&i.CreatedAt,
	)
	return i, err
}

const listEntries = `-- name: ListEntries :many
SELECT id, tenant_id, description, entry_date, state, target_kind, target_id, commercial_document_kind, commercial_document_id, created_at FROM entries
WHERE ($1::text IS NULL OR tenant_id = $1::text)
  AND ($2::text IS NULL OR target_kind = $2::text)
  AND ($3::text IS NULL OR target_id = $3::text)
  AND ($4::text IS NULL OR commercial_document_kind = $4::text)
  AND ($5::text IS NULL OR commercial_document_id = $5::text)
  AND ($6::date IS NULL OR entry_date >= $6::date)
  AND ($7::date IS NULL OR entry_date <= $7::date)
ORDER BY entry_date DESC, created_at DESC
LIMIT $8 OFFSET $9
`

type ListEntriesParams struct {
	TenantID               pgtype.Text `json:"tenant_id"`
	TargetKind             pgtype.Text `json:"target_kind"`
	TargetID               pgtype.Text `json:"target_id"`
	CommercialDocumentKind pgtype.Text `json:"commercial_document_kind"`
	CommercialDocumentID   pgtype.Text `json:"commercial_document_id"`
	FromDate               pgtype.Date `json:"from_date"`
	ToDate                 pgtype.Date `json:"to_date"`
	Limit                  int32       `json:"limit"`
	Offset                 int32       `json:"offset"`
}

func (q *Queries) ListEntries(ctx context.Context, arg ListEntriesParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, listEntries,
		arg.TenantID,
		arg.TargetKind,
		arg.TargetID,
		arg.CommercialDocumentKind,
		arg.CommercialDocumentID,
		arg.FromDate,
		arg.ToDate,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Description,
			&i.EntryDate,
			&i.State,
			&i.TargetKind,
			&i.TargetID,
			&i.CommercialDocumentKind,
			&i.CommercialDocumentID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
