package usecase

import (
	"context"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// UpdatePresenceInput upserts the caller's live presence record.
type UpdatePresenceInput struct {
	UserID          string
	EnterpriseID    string
	Status          collab.PresenceStatus
	CurrentDocument string
	Cursor          *collab.CursorPosition
}

// UpdatePresenceUseCase replaces the user's presence record and advances
// lastActivity. All status transitions are accepted; re-applying identical
// fields is a no-op in effect. This is the one write that is safe to retry
// automatically, being an idempotent heartbeat.
type UpdatePresenceUseCase struct {
	Repo repository.PresenceRepository
}

func NewUpdatePresenceUseCase(repo repository.PresenceRepository) *UpdatePresenceUseCase {
	return &UpdatePresenceUseCase{Repo: repo}
}

func (uc *UpdatePresenceUseCase) Execute(ctx context.Context, in UpdatePresenceInput) (*collab.UserPresence, error) {
	if in.UserID == "" || in.EnterpriseID == "" {
		return nil, fmt.Errorf("%w: user id and enterprise id are required", collab.ErrInvalidInput)
	}
	if !collab.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown presence status %q", collab.ErrInvalidInput, in.Status)
	}

	record := collab.UserPresence{
		UserID:          in.UserID,
		EnterpriseID:    in.EnterpriseID,
		Status:          in.Status,
		CurrentDocument: in.CurrentDocument,
		Cursor:          in.Cursor,
		LastActivity:    time.Now().UTC(),
	}

	if err := uc.Repo.Upsert(ctx, record); err != nil {
		// One retry: heartbeats are idempotent.
		if err = uc.Repo.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	return &record, nil
}
