package repository

import (
	"context"

	collab "go-drafty/internal/pkg/collab/application/domain"
)

// MetricsRepository stores realtime-plane performance samples.
type MetricsRepository interface {
	Insert(ctx context.Context, s collab.PerformanceSample) error
	// ListRecent returns up to limit samples ordered newest first.
	ListRecent(ctx context.Context, limit int) ([]collab.PerformanceSample, error)
}
