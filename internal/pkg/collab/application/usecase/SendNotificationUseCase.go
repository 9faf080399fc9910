package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// SendNotificationInput creates one unread notification for a user.
type SendNotificationInput struct {
	UserID   string
	Type     string
	Title    string
	Message  string
	Data     map[string]any
	Priority collab.NotificationPriority
}

// SendNotificationUseCase persists the notification and pushes it to the
// user's live connection when there is one. Delivery is best effort; the
// stored record is the source of truth.
type SendNotificationUseCase struct {
	Repo repository.NotificationRepository
	Push Publisher
}

func NewSendNotificationUseCase(repo repository.NotificationRepository, push Publisher) *SendNotificationUseCase {
	return &SendNotificationUseCase{Repo: repo, Push: push}
}

func (uc *SendNotificationUseCase) Execute(ctx context.Context, in SendNotificationInput) (*collab.Notification, error) {
	n, err := collab.NewNotification(in.UserID, in.Type, in.Title, in.Message, in.Data, in.Priority, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.Insert(ctx, *n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	n.ID = id

	uc.push(n)
	return n, nil
}

func (uc *SendNotificationUseCase) push(n *collab.Notification) {
	if uc.Push == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{"type": "notification", "notification": n})
	if err != nil {
		return
	}
	_ = uc.Push.PublishToUser(n.UserID, payload)
}
