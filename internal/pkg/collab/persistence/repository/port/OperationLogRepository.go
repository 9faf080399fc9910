package repository

import (
	"context"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// OperationLogRepository is the append-only, per-session ordered store of
// edit operations and the durable source of truth for replay.
type OperationLogRepository interface {
	// Append assigns the next strictly increasing version for the session
	// (starting at 1, no gaps or duplicates under concurrent callers) and
	// stores the operation with the given timestamp. Existing entries are
	// never mutated.
	Append(ctx context.Context, sessionID, userID string, op collab.Op, at time.Time) (collab.EditOperation, error)

	// ListAfter returns entries with version > afterVersion ordered by
	// version ascending.
	ListAfter(ctx context.Context, sessionID string, afterVersion int64) ([]collab.EditOperation, error)
}
