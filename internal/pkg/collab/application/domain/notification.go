package collab

import (
	"fmt"
	"time"
)

// NotificationStatus tracks the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// NotificationPriority orders delivery urgency.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// BatchWindow is how far back an unread notification of the same type is
// considered mergeable instead of creating a new record.
const BatchWindow = 5 * time.Minute

// Notification is a message delivered to one user. Records are mutable only
// for batching merges and read-state transitions.
type Notification struct {
	ID        string               `db:"id"`
	UserID    string               `db:"user_id"`
	Type      string               `db:"type"`
	Title     string               `db:"title"`
	Message   string               `db:"message"`
	Data      map[string]any       `db:"data"`
	Priority  NotificationPriority `db:"priority"`
	Status    NotificationStatus   `db:"status"`
	Count     int                  `db:"count"`
	CreatedAt time.Time            `db:"created_at"`
}

// NewNotification validates and shapes an unread notification.
func NewNotification(userID, notifType, title, message string, data map[string]any, priority NotificationPriority, now time.Time) (*Notification, error) {
	if userID == "" || notifType == "" {
		return nil, fmt.Errorf("%w: user id and type are required", ErrInvalidInput)
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		Priority:  priority,
		Status:    NotificationUnread,
		Count:     1,
		CreatedAt: now,
	}, nil
}

// AggregateMessage is the summary text a merged notification carries.
func AggregateMessage(count int) string {
	return fmt.Sprintf("%d items updated", count)
}
