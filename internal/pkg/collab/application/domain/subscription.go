package collab

import "fmt"

// EventKind names a change event a user can subscribe to on an entity.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventUpdated   EventKind = "updated"
	EventDeleted   EventKind = "deleted"
	EventCommented EventKind = "commented"
)

// Subscription registers a user's interest in events on one entity. At most
// one active record exists per (user, entityType, entityID); duplicate
// subscribe calls merge event sets.
type Subscription struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	EntityType string      `db:"entity_type"`
	EntityID   string      `db:"entity_id"`
	Events     []EventKind `db:"events"`
	Active     bool        `db:"active"`
}

// NewSubscription validates and shapes an active subscription with a
// deduplicated event set.
func NewSubscription(userID, entityType, entityID string, events []EventKind) (*Subscription, error) {
	if userID == "" || entityType == "" || entityID == "" {
		return nil, fmt.Errorf("%w: user id, entity type and entity id are required", ErrInvalidInput)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: at least one event kind is required", ErrInvalidInput)
	}
	return &Subscription{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Events:     MergeEvents(nil, events),
		Active:     true,
	}, nil
}

// MergeEvents unions two event sets preserving first-seen order.
func MergeEvents(existing, incoming []EventKind) []EventKind {
	seen := make(map[EventKind]struct{}, len(existing)+len(incoming))
	merged := make([]EventKind, 0, len(existing)+len(incoming))
	for _, lists := range [][]EventKind{existing, incoming} {
		for _, ev := range lists {
			if _, ok := seen[ev]; ok {
				continue
			}
			seen[ev] = struct{}{}
			merged = append(merged, ev)
		}
	}
	return merged
}
