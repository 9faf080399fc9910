package adapter

import (
	"context"
	"errors"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgDirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgDirectoryRepository(pool *pgxpool.Pool) *PgDirectoryRepository {
	return &PgDirectoryRepository{pool: pool}
}

var _ repository.DirectoryRepository = (*PgDirectoryRepository)(nil)

func (r *PgDirectoryRepository) FindProfiles(ctx context.Context, userIDs []string) (map[string]collab.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDirectoryRepository: nil pool")
	}
	profiles := make(map[string]collab.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, display_name
		FROM collab.app_user
		WHERE id = ANY($1)
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p collab.Profile
		if err := rows.Scan(&p.UserID, &p.Email, &p.DisplayName); err != nil {
			return nil, err
		}
		profiles[p.UserID] = p
	}
	return profiles, rows.Err()
}
