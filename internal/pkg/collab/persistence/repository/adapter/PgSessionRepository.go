package adapter

import (
	"context"
	"errors"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

var _ repository.SessionRepository = (*PgSessionRepository)(nil)

// EnsureSession upserts on the document's unique constraint so concurrent
// first joins converge on one session row.
func (r *PgSessionRepository) EnsureSession(ctx context.Context, documentID, documentType, enterpriseID string, createdAt time.Time) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgSessionRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collab.session (document_id, document_type, enterprise_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id) DO UPDATE SET document_id = EXCLUDED.document_id
		RETURNING id::text
	`, documentID, documentType, enterpriseID, createdAt).Scan(&id)
	return id, err
}

func (r *PgSessionRepository) AddParticipant(ctx context.Context, sessionID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSessionRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO collab.session_participant (session_id, user_id)
		VALUES ($1::uuid, $2)
		ON CONFLICT (session_id, user_id) DO NOTHING
	`, sessionID, userID)
	return err
}

func (r *PgSessionRepository) FindSession(ctx context.Context, sessionID string) (*collab.EditingSession, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSessionRepository: nil pool")
	}
	return r.findOne(ctx, "id = $1::uuid", sessionID)
}

func (r *PgSessionRepository) FindSessionByDocument(ctx context.Context, documentID string) (*collab.EditingSession, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSessionRepository: nil pool")
	}
	return r.findOne(ctx, "document_id = $1", documentID)
}

func (r *PgSessionRepository) findOne(ctx context.Context, where string, arg any) (*collab.EditingSession, error) {
	var s collab.EditingSession
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, document_id, document_type, enterprise_id, created_at
		FROM collab.session
		WHERE `+where,
		arg,
	).Scan(&s.ID, &s.DocumentID, &s.DocumentType, &s.EnterpriseID, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	participants, err := r.listParticipants(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Participants = participants
	return &s, nil
}

func (r *PgSessionRepository) listParticipants(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM collab.session_participant
		WHERE session_id = $1::uuid
		ORDER BY joined_at, user_id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgSessionRepository) ListSessions(ctx context.Context) ([]collab.EditingSession, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSessionRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, document_id, document_type, enterprise_id, created_at
		FROM collab.session
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []collab.EditingSession
	for rows.Next() {
		var s collab.EditingSession
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.DocumentType, &s.EnterpriseID, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	for i := range sessions {
		participants, err := r.listParticipants(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Participants = participants
	}
	return sessions, nil
}

func (r *PgSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSessionRepository: nil pool")
	}
	// Membership rows cascade; the version counter goes with the session,
	// the operation log stays.
	if _, err := r.pool.Exec(ctx, `DELETE FROM collab.session_seq WHERE session_id = $1::uuid`, sessionID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM collab.session WHERE id = $1::uuid`, sessionID)
	return err
}
