package usecase

import (
	"context"
	"fmt"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

type SubscribeToUpdatesInput struct {
	UserID     string
	EntityType string
	EntityID   string
	Events     []collab.EventKind
}

type SubscribeToUpdatesResult struct {
	SubscriptionID string
	Events         []collab.EventKind
}

// SubscribeToUpdatesUseCase registers interest in change events on an entity.
// Subscribing twice to the same entity merges event sets rather than creating
// a second row.
type SubscribeToUpdatesUseCase struct {
	Repo repository.NotificationRepository
}

func NewSubscribeToUpdatesUseCase(repo repository.NotificationRepository) *SubscribeToUpdatesUseCase {
	return &SubscribeToUpdatesUseCase{Repo: repo}
}

func (uc *SubscribeToUpdatesUseCase) Execute(ctx context.Context, in SubscribeToUpdatesInput) (*SubscribeToUpdatesResult, error) {
	sub, err := collab.NewSubscription(in.UserID, in.EntityType, in.EntityID, in.Events)
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.UpsertSubscription(ctx, *sub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &SubscribeToUpdatesResult{SubscriptionID: id, Events: sub.Events}, nil
}
