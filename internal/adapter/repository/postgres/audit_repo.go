package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookledger/internal/domain"
	"github.com/iho/bookledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bookledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a new audit log record.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	params, err := createAuditLogParams(log)
	if err != nil {
		return err
	}

	return r.queries.CreateAuditLog(ctx, params)
}

// CreateTx inserts a new audit log record inside an open transaction.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	params, err := createAuditLogParams(log)
	if err != nil {
		return err
	}

	return generated.New(tx.(*Tx).PgxTx()).CreateAuditLog(ctx, params)
}

// List retrieves audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.queries.ListAuditLogs(ctx, generated.ListAuditLogsParams{
		Actor:        optionalText(filter.Actor),
		Action:       optionalText(filter.Action),
		ResourceType: optionalText(filter.ResourceType),
		ResourceID:   optionalText(filter.ResourceID),
		StartDate:    timestamptzFromPtr(filter.StartDate),
		EndDate:      timestamptzFromPtr(filter.EndDate),
		Limit:        int32(limit),
		Offset:       int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		log := &domain.AuditLog{
			ID:           row.ID,
			Actor:        row.Actor,
			Action:       row.Action,
			ResourceType: row.ResourceType,
			ResourceID:   row.ResourceID,
			Status:       row.Status,
			ErrorMessage: row.ErrorMessage.String,
			CreatedAt:    row.CreatedAt.Time,
		}

		if row.BeforeState != nil {
			_ = json.Unmarshal(row.BeforeState, &log.BeforeState)
		}

		if row.AfterState != nil {
			_ = json.Unmarshal(row.AfterState, &log.AfterState)
		}

		logs = append(logs, log)
	}

	return logs, nil
}

func createAuditLogParams(log *domain.AuditLog) (generated.CreateAuditLogParams, error) {
	var beforeState, afterState []byte
	var err error

	if log.BeforeState != nil {
		beforeState, err = json.Marshal(log.BeforeState)
		if err != nil {
			return generated.CreateAuditLogParams{}, err
		}
	}

	if log.AfterState != nil {
		afterState, err = json.Marshal(log.AfterState)
		if err != nil {
			return generated.CreateAuditLogParams{}, err
		}
	}

	return generated.CreateAuditLogParams{
		ID:           log.ID,
		Actor:        log.Actor,
		Action:       log.Action,
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		BeforeState:  beforeState,
		AfterState:   afterState,
		Status:       log.Status,
		ErrorMessage: optionalText(log.ErrorMessage),
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	}, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}

func timestamptzFromPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}
