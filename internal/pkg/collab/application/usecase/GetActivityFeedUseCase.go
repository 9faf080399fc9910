package usecase

import (
	"context"
	"fmt"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// GetActivityFeedInput fetches recent activity for one document.
type GetActivityFeedInput struct {
	DocumentID string
	Limit      int
}

type GetActivityFeedUseCase struct {
	Repo repository.ActivityRepository
}

func NewGetActivityFeedUseCase(repo repository.ActivityRepository) *GetActivityFeedUseCase {
	return &GetActivityFeedUseCase{Repo: repo}
}

func (uc *GetActivityFeedUseCase) Execute(ctx context.Context, in GetActivityFeedInput) ([]collab.ActivityRecord, error) {
	if in.DocumentID == "" {
		return nil, fmt.Errorf("%w: document id is required", collab.ErrInvalidInput)
	}
	records, err := uc.Repo.ListByDocument(ctx, in.DocumentID, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return records, nil
}
