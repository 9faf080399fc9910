package usecase

import (
	"context"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// TrackActivityInput appends one immutable activity record after validating
// the event type against the fixed allow-list.
type TrackActivityInput struct {
	UserID       string
	EnterpriseID string
	EventType    collab.ActivityEventType
	DocumentID   string
	Metadata     map[string]string
}

type TrackActivityUseCase struct {
	Repo repository.ActivityRepository
}

func NewTrackActivityUseCase(repo repository.ActivityRepository) *TrackActivityUseCase {
	return &TrackActivityUseCase{Repo: repo}
}

func (uc *TrackActivityUseCase) Execute(ctx context.Context, in TrackActivityInput) (*collab.ActivityRecord, error) {
	rec, err := collab.NewActivityRecord(in.UserID, in.EnterpriseID, in.EventType, in.DocumentID, in.Metadata, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.Insert(ctx, *rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	rec.ID = id
	return rec, nil
}
