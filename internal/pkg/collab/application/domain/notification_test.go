package collab

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewNotificationDefaults(t *testing.T) {
	n, err := NewNotification("u1", "contract_update", "Contract", "Contract updated", nil, "", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Status != NotificationUnread {
		t.Errorf("status = %s, want unread", n.Status)
	}
	if n.Priority != PriorityNormal {
		t.Errorf("priority = %s, want normal", n.Priority)
	}
	if n.Count != 1 {
		t.Errorf("count = %d, want 1", n.Count)
	}
	if n.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestNewNotificationRequiresUserAndType(t *testing.T) {
	if _, err := NewNotification("", "t", "", "", nil, PriorityLow, time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing user: got %v", err)
	}
	if _, err := NewNotification("u1", "", "", "", nil, PriorityLow, time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing type: got %v", err)
	}
}

func TestAggregateMessage(t *testing.T) {
	if got := AggregateMessage(2); got != "2 items updated" {
		t.Errorf("got %q", got)
	}
}

func TestNewSubscriptionDeduplicatesEvents(t *testing.T) {
	sub, err := NewSubscription("u1", "contract", "c42", []EventKind{EventUpdated, EventUpdated, EventCreated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Active {
		t.Error("subscription must start active")
	}
	want := []EventKind{EventUpdated, EventCreated}
	if !reflect.DeepEqual(sub.Events, want) {
		t.Errorf("events = %v, want %v", sub.Events, want)
	}
}

func TestNewSubscriptionValidation(t *testing.T) {
	if _, err := NewSubscription("", "contract", "c42", []EventKind{EventUpdated}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing user: got %v", err)
	}
	if _, err := NewSubscription("u1", "contract", "c42", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty events: got %v", err)
	}
}

func TestMergeEventsUnion(t *testing.T) {
	got := MergeEvents([]EventKind{EventCreated, EventUpdated}, []EventKind{EventUpdated, EventDeleted})
	want := []EventKind{EventCreated, EventUpdated, EventDeleted}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
