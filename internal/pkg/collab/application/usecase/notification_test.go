package usecase

import (
	"context"
	"errors"
	"testing"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

func TestSendNotificationPersistsAndPushes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	push := &fakePublisher{}
	uc := NewSendNotificationUseCase(repo, push)

	n, err := uc.Execute(context.Background(), SendNotificationInput{
		UserID:  "alice",
		Type:    "contract_updated",
		Title:   "Contract updated",
		Message: "NDA v3 changed",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if n.ID == "" || n.Status != collab.NotificationUnread || n.Count != 1 {
		t.Fatalf("notification = %+v", n)
	}
	if len(push.toUser) != 1 || push.toUser[0].target != "alice" {
		t.Fatalf("push = %+v, want one frame to alice", push.toUser)
	}
}

func TestBatchNotificationMergesWithinWindow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := NewBatchNotificationUseCase(repo, &fakePublisher{})

	in := BatchNotificationInput{
		UserID:   "alice",
		Type:     "contract_updated",
		Title:    "Contract updated",
		Message:  "NDA v3 changed",
		EntityID: "contract-1",
	}
	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Merged || first.Count != 1 {
		t.Fatalf("first = %+v, want fresh record", first)
	}

	in.EntityID = "contract-2"
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !second.Merged || second.Count != 2 || second.NotificationID != first.NotificationID {
		t.Fatalf("second = %+v, want merge into %s", second, first.NotificationID)
	}

	in.EntityID = "contract-3"
	third, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("third: %v", err)
	}
	if third.Count != 3 {
		t.Fatalf("third count = %d, want 3", third.Count)
	}

	stored := repo.notifications[0]
	if stored.Message != collab.AggregateMessage(3) {
		t.Fatalf("message = %q, want aggregate summary", stored.Message)
	}
	ids, _ := stored.Data["aggregated_ids"].([]string)
	if len(ids) != 3 {
		t.Fatalf("aggregated_ids = %v, want three entries", ids)
	}
}

func TestBatchNotificationDifferentTypeCreatesNewRecord(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := NewBatchNotificationUseCase(repo, nil)

	if _, err := uc.Execute(context.Background(), BatchNotificationInput{UserID: "alice", Type: "contract_updated", EntityID: "c-1"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	res, err := uc.Execute(context.Background(), BatchNotificationInput{UserID: "alice", Type: "vendor_updated", EntityID: "v-1"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if res.Merged {
		t.Fatal("different type must not merge")
	}
	if len(repo.notifications) != 2 {
		t.Fatalf("stored = %d records, want 2", len(repo.notifications))
	}
}

func TestMarkNotificationRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	send := NewSendNotificationUseCase(repo, nil)
	n, err := send.Execute(context.Background(), SendNotificationInput{UserID: "alice", Type: "contract_updated"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := NewMarkNotificationReadUseCase(repo)
	if err := uc.Execute(context.Background(), "alice", n.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if repo.notifications[0].Status != collab.NotificationRead {
		t.Fatalf("status = %s, want read", repo.notifications[0].Status)
	}

	// Another user's id reads as not found.
	err = uc.Execute(context.Background(), "bob", n.ID)
	if !errors.Is(err, collab.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSubscribeMergesEventSets(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := NewSubscribeToUpdatesUseCase(repo)

	first, err := uc.Execute(context.Background(), SubscribeToUpdatesInput{
		UserID:     "alice",
		EntityType: "document",
		EntityID:   "doc-1",
		Events:     []collab.EventKind{collab.EventUpdated},
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := uc.Execute(context.Background(), SubscribeToUpdatesInput{
		UserID:     "alice",
		EntityType: "document",
		EntityID:   "doc-1",
		Events:     []collab.EventKind{collab.EventUpdated, collab.EventCommented},
	}); err != nil {
		t.Fatalf("second: %v", err)
	}

	if len(repo.subscriptions) != 1 {
		t.Fatalf("subscriptions = %d, want 1", len(repo.subscriptions))
	}
	merged := repo.subscriptions[0].Events
	if len(merged) != 2 || merged[0] != collab.EventUpdated || merged[1] != collab.EventCommented {
		t.Fatalf("events = %v, want deduplicated union", merged)
	}
	if repo.subscriptions[0].ID != first.SubscriptionID {
		t.Fatal("resubscribe created a second row")
	}
}

func TestSubscribeRequiresEvents(t *testing.T) {
	uc := NewSubscribeToUpdatesUseCase(&fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), SubscribeToUpdatesInput{
		UserID:     "alice",
		EntityType: "document",
		EntityID:   "doc-1",
	})
	if !errors.Is(err, collab.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
