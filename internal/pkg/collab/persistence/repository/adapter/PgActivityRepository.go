package adapter

import (
	"context"
	"encoding/json"
	"errors"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPgActivityRepository(pool *pgxpool.Pool) *PgActivityRepository {
	return &PgActivityRepository{pool: pool}
}

var _ repository.ActivityRepository = (*PgActivityRepository)(nil)

func (r *PgActivityRepository) Insert(ctx context.Context, rec collab.ActivityRecord) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgActivityRepository: nil pool")
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO collab.activity (user_id, enterprise_id, event_type, document_id, metadata, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5::jsonb, $6)
		RETURNING id::text
	`, rec.UserID, rec.EnterpriseID, rec.EventType, rec.DocumentID, string(meta), rec.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgActivityRepository) ListByDocument(ctx context.Context, documentID string, limit int) ([]collab.ActivityRecord, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgActivityRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id, enterprise_id, event_type, COALESCE(document_id, ''), metadata, created_at
		FROM collab.activity
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []collab.ActivityRecord
	for rows.Next() {
		var (
			rec  collab.ActivityRecord
			meta []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.EnterpriseID, &rec.EventType, &rec.DocumentID, &meta, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &rec.Metadata); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
