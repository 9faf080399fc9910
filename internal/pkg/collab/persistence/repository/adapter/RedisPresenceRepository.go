package adapter

import (
	"context"
	"encoding/json"
	"errors"

	cache "go-drafty/internal/infrastructure/cache/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

const (
	presenceKeyPrefix   = "presence:user:"
	enterpriseKeyPrefix = "presence:enterprise:"
)

// RedisPresenceRepository keeps the single live presence record per user in
// the cache, with a per-enterprise index set for tenant-scoped listings.
// Concurrent updates from the same user are last-write-wins.
type RedisPresenceRepository struct {
	cache cache.Cache
}

func NewRedisPresenceRepository(c cache.Cache) *RedisPresenceRepository {
	return &RedisPresenceRepository{cache: c}
}

var _ repository.PresenceRepository = (*RedisPresenceRepository)(nil)

func (r *RedisPresenceRepository) Upsert(ctx context.Context, p collab.UserPresence) error {
	if r == nil || r.cache == nil {
		return errors.New("RedisPresenceRepository: nil cache")
	}
	// LastActivity never moves backwards across updates.
	if existing, err := r.Get(ctx, p.UserID); err != nil {
		return err
	} else if existing != nil && existing.LastActivity.After(p.LastActivity) {
		p.LastActivity = existing.LastActivity
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := r.cache.Set(ctx, presenceKeyPrefix+p.UserID, string(payload), 0); err != nil {
		return err
	}
	return r.cache.SAdd(ctx, enterpriseKeyPrefix+p.EnterpriseID, p.UserID)
}

func (r *RedisPresenceRepository) Get(ctx context.Context, userID string) (*collab.UserPresence, error) {
	if r == nil || r.cache == nil {
		return nil, errors.New("RedisPresenceRepository: nil cache")
	}
	raw, err := r.cache.Get(ctx, presenceKeyPrefix+userID)
	if errors.Is(err, cache.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p collab.UserPresence
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisPresenceRepository) ListByEnterprise(ctx context.Context, enterpriseID string) ([]collab.UserPresence, error) {
	if r == nil || r.cache == nil {
		return nil, errors.New("RedisPresenceRepository: nil cache")
	}
	userIDs, err := r.cache.SMembers(ctx, enterpriseKeyPrefix+enterpriseID)
	if err != nil {
		return nil, err
	}
	records := make([]collab.UserPresence, 0, len(userIDs))
	for _, id := range userIDs {
		p, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// Dangling index entry; drop it best effort.
			_ = r.cache.SRem(ctx, enterpriseKeyPrefix+enterpriseID, id)
			continue
		}
		records = append(records, *p)
	}
	return records, nil
}
