package repository

import (
	"context"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// DirectoryRepository resolves user ids to the minimal public profile joined
// onto presence listings. Unknown ids are simply absent from the result.
type DirectoryRepository interface {
	FindProfiles(ctx context.Context, userIDs []string) (map[string]collab.Profile, error)
}
