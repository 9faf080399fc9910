package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

func (r *PgNotificationRepository) Insert(ctx context.Context, n collab.Notification) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNotificationRepository: nil pool")
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO collab.notification (user_id, type, title, message, data, priority, status, count, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)
		RETURNING id::text
	`, n.UserID, n.Type, n.Title, n.Message, string(data), n.Priority, n.Status, n.Count, n.CreatedAt).Scan(&id)
	return id, err
}

// MergeRecent is a single conditional UPDATE: the inner select pins the
// newest mergeable record and the row lock serializes concurrent bursts, so
// the count never double-increments and the aggregate message stays in step
// with it.
func (r *PgNotificationRepository) MergeRecent(ctx context.Context, userID, notifType, entityID string, window time.Duration) (string, int, bool, error) {
	if r == nil || r.pool == nil {
		return "", 0, false, errors.New("PgNotificationRepository: nil pool")
	}
	if window <= 0 {
		window = collab.BatchWindow
	}
	cutoff := time.Now().UTC().Add(-window)

	var (
		id    string
		count int
	)
	err := r.pool.QueryRow(ctx, `
		UPDATE collab.notification n
		SET count = n.count + 1,
		    message = (n.count + 1)::text || ' items updated',
		    data = jsonb_set(n.data, '{aggregated_ids}',
		           COALESCE(n.data->'aggregated_ids', '[]'::jsonb) || to_jsonb($3::text))
		WHERE n.id = (
			SELECT id FROM collab.notification
			WHERE user_id = $1 AND type = $2 AND status = 'unread' AND created_at > $4
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING n.id::text, n.count
	`, userID, notifType, entityID, cutoff).Scan(&id, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return id, count, true, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE collab.notification
		SET status = 'read'
		WHERE id = $2::uuid AND user_id = $1
	`, userID, notificationID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgNotificationRepository) UpsertSubscription(ctx context.Context, sub collab.Subscription) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNotificationRepository: nil pool")
	}
	events := make([]string, len(sub.Events))
	for i, ev := range sub.Events {
		events[i] = string(ev)
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collab.subscription (user_id, entity_type, entity_id, events, active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (user_id, entity_type, entity_id) DO UPDATE
		SET active = true,
		    events = (SELECT array_agg(DISTINCT e)
		              FROM unnest(collab.subscription.events || EXCLUDED.events) AS e)
		RETURNING id::text
	`, sub.UserID, sub.EntityType, sub.EntityID, events).Scan(&id)
	return id, err
}

func (r *PgNotificationRepository) ListSubscribers(ctx context.Context, entityType, entityID string, event collab.EventKind) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM collab.subscription
		WHERE entity_type = $1 AND entity_id = $2 AND active AND $3 = ANY(events)
	`, entityType, entityID, string(event))
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
