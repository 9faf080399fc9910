package repository

import (
	"context"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// ActivityRepository appends immutable activity records and serves the
// per-document feed the product reads back.
type ActivityRepository interface {
	Insert(ctx context.Context, rec collab.ActivityRecord) (string, error)
	ListByDocument(ctx context.Context, documentID string, limit int) ([]collab.ActivityRecord, error)
}
