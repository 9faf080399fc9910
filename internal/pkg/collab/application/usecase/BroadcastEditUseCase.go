package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	qport "go-drafty/internal/infrastructure/queue/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// BroadcastEditInput carries one client edit plus its untyped operation
// payload. The payload is validated into a variant before anything mutates.
type BroadcastEditInput struct {
	SessionID string
	UserID    string
	Operation collab.OpEnvelope
}

// EditEvent is the frame pushed to other participants when an edit lands.
type EditEvent struct {
	Type       string            `json:"type"`
	SessionID  string            `json:"session_id"`
	DocumentID string            `json:"document_id"`
	UserID     string            `json:"user_id"`
	Version    int64             `json:"version"`
	Operation  collab.OpEnvelope `json:"operation"`
	Timestamp  time.Time         `json:"timestamp"`
}

// BroadcastEditUseCase validates an edit against the session, appends it to
// the operation log (which assigns the version) and fans the raw operation
// out to the other participants. All checks run before any mutation.
type BroadcastEditUseCase struct {
	Sessions repository.SessionRepository
	Log      repository.OperationLogRepository
	Push     Publisher
	Queue    qport.Client
}

func NewBroadcastEditUseCase(sessions repository.SessionRepository, log repository.OperationLogRepository, push Publisher, queue qport.Client) *BroadcastEditUseCase {
	return &BroadcastEditUseCase{Sessions: sessions, Log: log, Push: push, Queue: queue}
}

func (uc *BroadcastEditUseCase) Execute(ctx context.Context, in BroadcastEditInput) (*collab.EditOperation, error) {
	if in.SessionID == "" || in.UserID == "" {
		return nil, fmt.Errorf("%w: session id and user id are required", collab.ErrInvalidInput)
	}

	session, err := uc.Sessions.FindSession(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if session == nil {
		return nil, collab.ErrNotFound
	}
	if !session.HasParticipant(in.UserID) {
		return nil, collab.ErrNotParticipant
	}

	op, err := collab.DecodeOp(in.Operation)
	if err != nil {
		return nil, err
	}

	entry, err := uc.Log.Append(ctx, in.SessionID, in.UserID, op, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.fanOut(ctx, session, entry)
	return &entry, nil
}

func (uc *BroadcastEditUseCase) fanOut(ctx context.Context, session *collab.EditingSession, entry collab.EditOperation) {
	event := EditEvent{
		Type:       "edit",
		SessionID:  entry.SessionID,
		DocumentID: session.DocumentID,
		UserID:     entry.UserID,
		Version:    entry.Version,
		Operation:  collab.EncodeOp(entry.Op),
		Timestamp:  entry.Timestamp,
	}
	if payload, err := json.Marshal(event); err == nil && uc.Push != nil {
		uc.Push.PublishToDocument(session.DocumentID, payload, entry.UserID)
	}

	// Subscribers who are not in the room learn about the edit through the
	// batched notification pipeline.
	if uc.Queue == nil {
		return
	}
	task, err := NewDocumentEditedTask(session.DocumentID, entry.UserID)
	if err != nil {
		return
	}
	_, _ = uc.Queue.Enqueue(ctx, task, qport.EnqueueOption{Queue: "collab", MaxRetry: 3})
}
