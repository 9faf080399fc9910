package usecase

import (
	"context"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// GetActiveUsersInput scopes an active-user listing to one tenant, optionally
// narrowed to a document. IncludeInactive keeps stale (but not offline)
// records in the result.
type GetActiveUsersInput struct {
	EnterpriseID    string
	DocumentID      string
	IncludeInactive bool
}

// GetActiveUsersUseCase lists live presence records for a tenant joined with
// the minimal public profile. Offline records never appear; staleness is
// computed at read time against the inactivity threshold, not via timers.
type GetActiveUsersUseCase struct {
	Presence  repository.PresenceRepository
	Directory repository.DirectoryRepository

	// InactivityThreshold overrides the default when positive.
	InactivityThreshold time.Duration
}

func NewGetActiveUsersUseCase(presence repository.PresenceRepository, directory repository.DirectoryRepository) *GetActiveUsersUseCase {
	return &GetActiveUsersUseCase{Presence: presence, Directory: directory}
}

func (uc *GetActiveUsersUseCase) Execute(ctx context.Context, in GetActiveUsersInput) ([]collab.ActiveUser, error) {
	if in.EnterpriseID == "" {
		return nil, fmt.Errorf("%w: enterprise id is required", collab.ErrInvalidInput)
	}

	records, err := uc.Presence.ListByEnterprise(ctx, in.EnterpriseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := time.Now().UTC()
	active := records[:0:0]
	for _, p := range records {
		if in.DocumentID != "" && p.CurrentDocument != in.DocumentID {
			continue
		}
		if !p.ActiveAt(now, uc.InactivityThreshold, in.IncludeInactive) {
			continue
		}
		active = append(active, p)
	}

	ids := make([]string, len(active))
	for i, p := range active {
		ids[i] = p.UserID
	}
	profiles, err := uc.Directory.FindProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	users := make([]collab.ActiveUser, len(active))
	for i, p := range active {
		users[i] = collab.ActiveUser{Presence: p, Profile: profiles[p.UserID]}
		if users[i].Profile.UserID == "" {
			users[i].Profile.UserID = p.UserID
		}
	}
	return users, nil
}
