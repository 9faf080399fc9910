package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// BatchNotificationInput delivers one event that may fold into an existing
// unread notification of the same type instead of creating a new record.
// EntityID identifies the changed entity for the aggregation list.
type BatchNotificationInput struct {
	UserID   string
	Type     string
	Title    string
	Message  string
	EntityID string
	Priority collab.NotificationPriority
}

// BatchNotificationResult reports whether the event merged or created.
type BatchNotificationResult struct {
	NotificationID string
	Count          int
	Merged         bool
}

// BatchNotificationUseCase bounds notification volume under edit bursts: an
// unread notification of the same type within the batch window absorbs the
// event via the repository's atomic conditional update; otherwise a fresh
// record is created. There is no read-then-write window to double count in.
type BatchNotificationUseCase struct {
	Repo repository.NotificationRepository
	Push Publisher
}

func NewBatchNotificationUseCase(repo repository.NotificationRepository, push Publisher) *BatchNotificationUseCase {
	return &BatchNotificationUseCase{Repo: repo, Push: push}
}

func (uc *BatchNotificationUseCase) Execute(ctx context.Context, in BatchNotificationInput) (*BatchNotificationResult, error) {
	if in.UserID == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: user id and type are required", collab.ErrInvalidInput)
	}

	id, count, merged, err := uc.Repo.MergeRecent(ctx, in.UserID, in.Type, in.EntityID, collab.BatchWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !merged {
		data := map[string]any{}
		if in.EntityID != "" {
			data["aggregated_ids"] = []string{in.EntityID}
		}
		n, err := collab.NewNotification(in.UserID, in.Type, in.Title, in.Message, data, in.Priority, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		id, err = uc.Repo.Insert(ctx, *n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		count = 1
	}

	uc.push(in.UserID, id, count, merged)
	return &BatchNotificationResult{NotificationID: id, Count: count, Merged: merged}, nil
}

func (uc *BatchNotificationUseCase) push(userID, id string, count int, merged bool) {
	if uc.Push == nil {
		return
	}
	frame := map[string]any{
		"type":            "notification",
		"notification_id": id,
		"count":           count,
		"merged":          merged,
	}
	if count > 1 {
		frame["message"] = collab.AggregateMessage(count)
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = uc.Push.PublishToUser(userID, payload)
	}
}
