package usecase

import (
	"context"
	"fmt"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// MarkNotificationReadUseCase flips one of the caller's notifications to
// read. Another user's notification id reads as not found rather than
// leaking its existence.
type MarkNotificationReadUseCase struct {
	Repo repository.NotificationRepository
}

func NewMarkNotificationReadUseCase(repo repository.NotificationRepository) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Repo: repo}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, userID, notificationID string) error {
	if userID == "" || notificationID == "" {
		return fmt.Errorf("%w: user id and notification id are required", collab.ErrInvalidInput)
	}
	ok, err := uc.Repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("%w: notification %q", collab.ErrNotFound, notificationID)
	}
	return nil
}
