package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgOperationLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgOperationLogRepository(pool *pgxpool.Pool) *PgOperationLogRepository {
	return &PgOperationLogRepository{pool: pool}
}

var _ repository.OperationLogRepository = (*PgOperationLogRepository)(nil)

// Append increments the per-session counter row and inserts the entry in one
// transaction. The counter row's lock serializes writers for the session, so
// versions are gapless and duplicate-free; sessions stay fully independent.
func (r *PgOperationLogRepository) Append(ctx context.Context, sessionID, userID string, op collab.Op, at time.Time) (collab.EditOperation, error) {
	var entry collab.EditOperation
	if r == nil || r.pool == nil {
		return entry, errors.New("PgOperationLogRepository: nil pool")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return entry, err
	}
	defer tx.Rollback(ctx)

	var version int64
	err = tx.QueryRow(ctx, `
		INSERT INTO collab.session_seq (session_id, last_version)
		VALUES ($1::uuid, 1)
		ON CONFLICT (session_id) DO UPDATE SET last_version = collab.session_seq.last_version + 1
		RETURNING last_version
	`, sessionID).Scan(&version)
	if err != nil {
		return entry, err
	}

	env := collab.EncodeOp(op)
	_, err = tx.Exec(ctx, `
		INSERT INTO collab.operation (session_id, version, user_id, kind, position, content, length, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
	`, sessionID, version, userID, env.Kind, env.Position, env.Content, env.Length, at)
	if err != nil {
		return entry, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entry, err
	}

	return collab.EditOperation{
		SessionID: sessionID,
		UserID:    userID,
		Op:        op,
		Version:   version,
		Timestamp: at,
	}, nil
}

func (r *PgOperationLogRepository) ListAfter(ctx context.Context, sessionID string, afterVersion int64) ([]collab.EditOperation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgOperationLogRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT version, user_id, kind, position, content, length, created_at
		FROM collab.operation
		WHERE session_id = $1::uuid AND version > $2
		ORDER BY version
	`, sessionID, afterVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []collab.EditOperation
	for rows.Next() {
		var (
			entry   collab.EditOperation
			kind    string
			pos     int
			content *string
			length  *int
		)
		entry.SessionID = sessionID
		if err := rows.Scan(&entry.Version, &entry.UserID, &kind, &pos, &content, &length, &entry.Timestamp); err != nil {
			return nil, err
		}
		op, err := collab.DecodeOp(collab.OpEnvelope{Kind: kind, Position: &pos, Content: content, Length: length})
		if err != nil {
			// Rows were validated before insert; a decode failure means
			// the table was tampered with out of band.
			return nil, fmt.Errorf("operation log: corrupt entry v%d: %w", entry.Version, err)
		}
		entry.Op = op
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
