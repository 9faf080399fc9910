package repository

import (
	"context"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// SessionRepository defines persistence for editing sessions and their
// participant sets. Lookups return (nil, nil) when no record exists so the
// application layer owns the not-found taxonomy.
type SessionRepository interface {
	// EnsureSession returns the live session id for the document, creating
	// the session lazily on first join. Concurrent calls for the same
	// document must converge on one session.
	EnsureSession(ctx context.Context, documentID, documentType, enterpriseID string, createdAt time.Time) (string, error)

	// AddParticipant adds userID with set semantics; re-adding is a no-op.
	AddParticipant(ctx context.Context, sessionID, userID string) error

	// FindSession loads a session with its participants.
	FindSession(ctx context.Context, sessionID string) (*collab.EditingSession, error)

	// FindSessionByDocument loads the live session for a document, if any.
	FindSessionByDocument(ctx context.Context, documentID string) (*collab.EditingSession, error)

	// ListSessions returns all live sessions with participants.
	ListSessions(ctx context.Context) ([]collab.EditingSession, error)

	// DeleteSession removes the session and its membership rows. Appended
	// operations are durable history and are not touched.
	DeleteSession(ctx context.Context, sessionID string) error
}
