package usecase

import (
	"context"
	"fmt"
	"time"

	identity "go-drafty/internal/infrastructure/identity/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// JoinSessionInput carries the data needed to join (or lazily create) the
// editing session for a document.
type JoinSessionInput struct {
	UserID       string
	EnterpriseID string
	DocumentID   string
	DocumentType string
}

// JoinSessionResult is what a joining client needs to start editing.
type JoinSessionResult struct {
	SessionID    string
	Participants []string
}

// JoinSessionUseCase checks document access, then attaches the user to the
// document's single live session, creating it on first join. Joining twice
// is idempotent: same session, participant listed once.
type JoinSessionUseCase struct {
	Repo   repository.SessionRepository
	Access identity.Authorizer
}

func NewJoinSessionUseCase(repo repository.SessionRepository, access identity.Authorizer) *JoinSessionUseCase {
	return &JoinSessionUseCase{Repo: repo, Access: access}
}

func (uc *JoinSessionUseCase) Execute(ctx context.Context, in JoinSessionInput) (*JoinSessionResult, error) {
	if in.UserID == "" || in.DocumentID == "" {
		return nil, fmt.Errorf("%w: user id and document id are required", collab.ErrInvalidInput)
	}

	ok, err := uc.Access.HasDocumentAccess(ctx, in.UserID, in.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, collab.ErrAccessDenied
	}

	sessionID, err := uc.Repo.EnsureSession(ctx, in.DocumentID, in.DocumentType, in.EnterpriseID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Repo.AddParticipant(ctx, sessionID, in.UserID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	session, err := uc.Repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if session == nil {
		return nil, collab.ErrNotFound
	}

	return &JoinSessionResult{SessionID: session.ID, Participants: session.Participants}, nil
}
