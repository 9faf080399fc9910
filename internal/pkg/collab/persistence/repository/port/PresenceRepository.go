package repository

import (
	"context"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// PresenceRepository holds the single live presence record per user, indexed
// by enterprise for tenant-scoped listings. Reads are point-in-time
// snapshots; staleness is computed by callers from LastActivity.
type PresenceRepository interface {
	// Upsert replaces the user's record. LastActivity must not move
	// backwards; implementations keep the existing value when it is newer.
	Upsert(ctx context.Context, p collab.UserPresence) error

	// Get loads one record, (nil, nil) when absent.
	Get(ctx context.Context, userID string) (*collab.UserPresence, error)

	// ListByEnterprise returns every record for the tenant, unfiltered.
	ListByEnterprise(ctx context.Context, enterpriseID string) ([]collab.UserPresence, error)
}
