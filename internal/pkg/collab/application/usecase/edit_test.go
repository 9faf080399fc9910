package usecase

import (
	"context"
	"errors"
	"testing"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func seedSession(t *testing.T, repo *fakeSessionRepo, documentID string, users ...string) string {
	t.Helper()
	uc := NewJoinSessionUseCase(repo, &fakeAuthorizer{granted: allGranted(documentID, users)})
	var sessionID string
	for _, u := range users {
		res, err := uc.Execute(context.Background(), JoinSessionInput{UserID: u, DocumentID: documentID})
		if err != nil {
			t.Fatalf("seed join %s: %v", u, err)
		}
		sessionID = res.SessionID
	}
	return sessionID
}

func allGranted(documentID string, users []string) map[string]bool {
	granted := map[string]bool{}
	for _, u := range users {
		granted[u+"/"+documentID] = true
	}
	return granted
}

func TestBroadcastEditAssignsIncreasingVersions(t *testing.T) {
	sessions := newFakeSessionRepo()
	log := newFakeOperationLog()
	push := &fakePublisher{}
	sessionID := seedSession(t, sessions, "doc-1", "alice", "bob")
	uc := NewBroadcastEditUseCase(sessions, log, push, nil)

	for i, want := range []int64{1, 2, 3} {
		entry, err := uc.Execute(context.Background(), BroadcastEditInput{
			SessionID: sessionID,
			UserID:    "alice",
			Operation: collab.OpEnvelope{Kind: "insert", Position: intp(i), Content: strp("x")},
		})
		if err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
		if entry.Version != want {
			t.Fatalf("edit %d version = %d, want %d", i, entry.Version, want)
		}
	}
}

func TestBroadcastEditFansOutExcludingEditor(t *testing.T) {
	sessions := newFakeSessionRepo()
	log := newFakeOperationLog()
	push := &fakePublisher{}
	queue := &fakeQueueClient{}
	sessionID := seedSession(t, sessions, "doc-1", "alice", "bob")
	uc := NewBroadcastEditUseCase(sessions, log, push, queue)

	_, err := uc.Execute(context.Background(), BroadcastEditInput{
		SessionID: sessionID,
		UserID:    "alice",
		Operation: collab.OpEnvelope{Kind: "delete", Position: intp(4), Length: intp(2)},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(push.toDocument) != 1 {
		t.Fatalf("document frames = %d, want 1", len(push.toDocument))
	}
	frame := push.toDocument[0]
	if frame.target != "doc-1" || frame.exclude != "alice" {
		t.Fatalf("frame routed to %q excluding %q", frame.target, frame.exclude)
	}
	if !containsFrame(push.toDocument, `"type":"edit"`) {
		t.Fatalf("frame payload missing edit type: %s", frame.payload)
	}

	if len(queue.enqueued) != 1 || queue.enqueued[0].Type != DocumentEditedTaskType {
		t.Fatalf("enqueued = %+v, want one %s task", queue.enqueued, DocumentEditedTaskType)
	}
}

func TestBroadcastEditRejectsUnknownSession(t *testing.T) {
	uc := NewBroadcastEditUseCase(newFakeSessionRepo(), newFakeOperationLog(), nil, nil)

	_, err := uc.Execute(context.Background(), BroadcastEditInput{
		SessionID: "session-404",
		UserID:    "alice",
		Operation: collab.OpEnvelope{Kind: "insert", Position: intp(0), Content: strp("x")},
	})
	if !errors.Is(err, collab.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBroadcastEditRejectsNonParticipant(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessionID := seedSession(t, sessions, "doc-1", "alice")
	uc := NewBroadcastEditUseCase(sessions, newFakeOperationLog(), nil, nil)

	_, err := uc.Execute(context.Background(), BroadcastEditInput{
		SessionID: sessionID,
		UserID:    "mallory",
		Operation: collab.OpEnvelope{Kind: "insert", Position: intp(0), Content: strp("x")},
	})
	if !errors.Is(err, collab.ErrNotParticipant) {
		t.Fatalf("err = %v, want ErrNotParticipant", err)
	}
}

func TestBroadcastEditRejectsMalformedOperationBeforeWriting(t *testing.T) {
	sessions := newFakeSessionRepo()
	log := newFakeOperationLog()
	sessionID := seedSession(t, sessions, "doc-1", "alice")
	uc := NewBroadcastEditUseCase(sessions, log, nil, nil)

	_, err := uc.Execute(context.Background(), BroadcastEditInput{
		SessionID: sessionID,
		UserID:    "alice",
		Operation: collab.OpEnvelope{Kind: "insert", Position: intp(0)},
	})
	if !errors.Is(err, collab.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(log.entries[sessionID]) != 0 {
		t.Fatal("invalid operation must not reach the log")
	}
}

func TestResolveConflictsAdjustsLoggedOperations(t *testing.T) {
	sessions := newFakeSessionRepo()
	log := newFakeOperationLog()
	push := &fakePublisher{}
	sessionID := seedSession(t, sessions, "doc-1", "alice", "bob")
	edit := NewBroadcastEditUseCase(sessions, log, push, nil)

	ops := []collab.OpEnvelope{
		{Kind: "insert", Position: intp(10), Content: strp("Hello")},
		{Kind: "delete", Position: intp(5), Length: intp(3)},
		{Kind: "insert", Position: intp(15), Content: strp("World")},
	}
	for _, env := range ops {
		if _, err := edit.Execute(context.Background(), BroadcastEditInput{SessionID: sessionID, UserID: "alice", Operation: env}); err != nil {
			t.Fatalf("log edit: %v", err)
		}
	}

	uc := NewResolveConflictsUseCase(sessions, log)
	res, err := uc.Execute(context.Background(), ResolveConflictsInput{SessionID: sessionID, BaseVersion: 0})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Resolved {
		t.Fatal("expected resolved result")
	}

	got := make([]int, len(res.MergedOperations))
	for i, e := range res.MergedOperations {
		got[i] = e.Op.Position()
	}
	want := []int{10, 5, 17}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("adjusted positions = %v, want %v", got, want)
		}
	}
}

func TestResolveConflictsDropsOperationsAtOrBelowBase(t *testing.T) {
	sessions := newFakeSessionRepo()
	log := newFakeOperationLog()
	sessionID := seedSession(t, sessions, "doc-1", "alice")
	edit := NewBroadcastEditUseCase(sessions, log, nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := edit.Execute(context.Background(), BroadcastEditInput{
			SessionID: sessionID,
			UserID:    "alice",
			Operation: collab.OpEnvelope{Kind: "insert", Position: intp(0), Content: strp("x")},
		}); err != nil {
			t.Fatalf("log edit: %v", err)
		}
	}

	uc := NewResolveConflictsUseCase(sessions, log)
	res, err := uc.Execute(context.Background(), ResolveConflictsInput{SessionID: sessionID, BaseVersion: 2})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.MergedOperations) != 1 || res.MergedOperations[0].Version != 3 {
		t.Fatalf("merged = %+v, want only version 3", res.MergedOperations)
	}
}

func TestResolveConflictsUnknownSession(t *testing.T) {
	uc := NewResolveConflictsUseCase(newFakeSessionRepo(), newFakeOperationLog())

	_, err := uc.Execute(context.Background(), ResolveConflictsInput{SessionID: "session-404"})
	if !errors.Is(err, collab.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
