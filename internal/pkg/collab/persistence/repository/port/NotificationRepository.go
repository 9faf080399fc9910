package repository

import (
	"context"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// NotificationRepository persists notifications and subscriptions. The merge
// path must be a single atomic conditional update, not a read followed by a
// write, so concurrent bursts never double count.
type NotificationRepository interface {
	Insert(ctx context.Context, n collab.Notification) (string, error)

	// MergeRecent folds entityID into the newest unread notification of the
	// same type for the user created within the window: count increments,
	// the entity id joins the aggregation list and the message is rewritten
	// to an aggregate summary. ok is false when no mergeable record exists.
	MergeRecent(ctx context.Context, userID, notifType, entityID string, window time.Duration) (id string, count int, ok bool, err error)

	// MarkRead flips one notification to read; false when it is not the
	// user's or does not exist.
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)

	// UpsertSubscription keeps at most one active row per
	// (user, entityType, entityID), merging event sets on conflict.
	UpsertSubscription(ctx context.Context, sub collab.Subscription) (string, error)

	// ListSubscribers returns user ids actively subscribed to the event on
	// the entity.
	ListSubscribers(ctx context.Context, entityType, entityID string, event collab.EventKind) ([]string, error)
}
