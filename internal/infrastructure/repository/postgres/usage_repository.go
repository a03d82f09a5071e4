package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtflow/nba-stats-api/internal/domain/usage"
	qb "github.com/courtflow/nba-stats-api/internal/platform/querybuilder"
)

type UsageRepository struct {
	db *sqlx.DB
}

func NewUsageRepository(db *sqlx.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) Insert(ctx context.Context, record usage.Record) error {
	insertModel := usageRecordInsertModel{
		Endpoint:    record.Endpoint,
		Payload:     record.Payload,
		Outcome:     record.Outcome,
		RequestedAt: record.RequestedAt,
	}

	query, args, err := qb.InsertModel("usage_log", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert usage query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert usage endpoint=%s: %w", record.Endpoint, err)
	}

	return nil
}

func (r *UsageRepository) Recent(ctx context.Context, limit int) ([]usage.Record, error) {
	query, args, err := qb.Select("id", "endpoint", "payload", "outcome", "requested_at").
		From("usage_log").
		OrderBy("requested_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build recent usage query: %w", err)
	}

	var rows []usageRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent usage: %w", err)
	}

	out := make([]usage.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, usage.Record{
			ID:          row.ID,
			Endpoint:    row.Endpoint,
			Payload:     row.Payload,
			Outcome:     row.Outcome,
			RequestedAt: row.RequestedAt,
		})
	}

	return out, nil
}

type usageRecordInsertModel struct {
	Endpoint    string    `db:"endpoint"`
	Payload     string    `db:"payload"`
	Outcome     string    `db:"outcome"`
	RequestedAt time.Time `db:"requested_at"`
}

type usageRecordRow struct {
	ID          int64     `db:"id"`
	Endpoint    string    `db:"endpoint"`
	Payload     string    `db:"payload"`
	Outcome     string    `db:"outcome"`
	RequestedAt time.Time `db:"requested_at"`
}
