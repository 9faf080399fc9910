package usecase

import (
	"context"
	"fmt"

	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/ot"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// ResolveConflictsInput asks for every operation after a base version,
// position-adjusted for replay (typically after a reconnect).
type ResolveConflictsInput struct {
	SessionID   string
	BaseVersion int64
}

// ResolveConflictsResult carries the merged, replay-ready operations.
type ResolveConflictsResult struct {
	Resolved         bool
	MergedOperations []collab.EditOperation
}

// ResolveConflictsUseCase reads the operation log past the base version and
// runs it through the transform. Conflicts are resolved, never surfaced as
// failures; the read is a point-in-time snapshot.
type ResolveConflictsUseCase struct {
	Sessions repository.SessionRepository
	Log      repository.OperationLogRepository
}

func NewResolveConflictsUseCase(sessions repository.SessionRepository, log repository.OperationLogRepository) *ResolveConflictsUseCase {
	return &ResolveConflictsUseCase{Sessions: sessions, Log: log}
}

func (uc *ResolveConflictsUseCase) Execute(ctx context.Context, in ResolveConflictsInput) (*ResolveConflictsResult, error) {
	if in.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", collab.ErrInvalidInput)
	}
	if in.BaseVersion < 0 {
		return nil, fmt.Errorf("%w: base version must be non-negative", collab.ErrInvalidInput)
	}

	session, err := uc.Sessions.FindSession(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if session == nil {
		return nil, collab.ErrNotFound
	}

	entries, err := uc.Log.ListAfter(ctx, in.SessionID, in.BaseVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &ResolveConflictsResult{
		Resolved:         true,
		MergedOperations: ot.Transform(entries),
	}, nil
}
