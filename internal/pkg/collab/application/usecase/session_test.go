package usecase

import (
	"context"
	"errors"
	"testing"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

func grantedAuthorizer(pairs ...string) *fakeAuthorizer {
	a := &fakeAuthorizer{granted: map[string]bool{}}
	for _, p := range pairs {
		a.granted[p] = true
	}
	return a
}

func TestJoinSessionCreatesLazily(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewJoinSessionUseCase(repo, grantedAuthorizer("alice/doc-1"))

	res, err := uc.Execute(context.Background(), JoinSessionInput{
		UserID:       "alice",
		EnterpriseID: "acme",
		DocumentID:   "doc-1",
		DocumentType: "contract",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(res.Participants) != 1 || res.Participants[0] != "alice" {
		t.Fatalf("participants = %v, want [alice]", res.Participants)
	}
}

func TestJoinSessionIsIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewJoinSessionUseCase(repo, grantedAuthorizer("alice/doc-1", "bob/doc-1"))

	first, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "alice", DocumentID: "doc-1"})
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "bob", DocumentID: "doc-1"}); err != nil {
		t.Fatalf("bob join: %v", err)
	}
	again, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "alice", DocumentID: "doc-1"})
	if err != nil {
		t.Fatalf("second join: %v", err)
	}

	if again.SessionID != first.SessionID {
		t.Fatalf("rejoin created a new session: %s vs %s", again.SessionID, first.SessionID)
	}
	if len(again.Participants) != 2 {
		t.Fatalf("participants = %v, want alice and bob once each", again.Participants)
	}
}

func TestJoinSessionDeniedWithoutAccess(t *testing.T) {
	uc := NewJoinSessionUseCase(newFakeSessionRepo(), grantedAuthorizer())

	_, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "mallory", DocumentID: "doc-1"})
	if !errors.Is(err, collab.ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestJoinSessionValidatesInput(t *testing.T) {
	uc := NewJoinSessionUseCase(newFakeSessionRepo(), grantedAuthorizer())

	_, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "", DocumentID: "doc-1"})
	if !errors.Is(err, collab.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestJoinSessionWrapsStoreFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.failNext = errors.New("connection reset")
	uc := NewJoinSessionUseCase(repo, grantedAuthorizer("alice/doc-1"))

	_, err := uc.Execute(context.Background(), JoinSessionInput{UserID: "alice", DocumentID: "doc-1"})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
}
