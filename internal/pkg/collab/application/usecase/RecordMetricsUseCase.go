package usecase

import (
	"context"
	"fmt"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// ConnectionCounter reports how many live websocket connections the realtime
// router currently holds. The router satisfies it.
type ConnectionCounter interface {
	ConnectionCount() int
}

type RecordMetricsInput struct {
	MessageRate float64
	LatencyP50  float64
	LatencyP95  float64
	LatencyP99  float64
	ErrorCount  int
}

// RecordMetricsUseCase snapshots the realtime plane into one sample row. The
// active connection count is read from the router at record time rather than
// trusted from the caller.
type RecordMetricsUseCase struct {
	Repo  repository.MetricsRepository
	Conns ConnectionCounter
}

func NewRecordMetricsUseCase(repo repository.MetricsRepository, conns ConnectionCounter) *RecordMetricsUseCase {
	return &RecordMetricsUseCase{Repo: repo, Conns: conns}
}

func (uc *RecordMetricsUseCase) Execute(ctx context.Context, in RecordMetricsInput) (*collab.PerformanceSample, error) {
	if in.LatencyP50 < 0 || in.LatencyP95 < 0 || in.LatencyP99 < 0 || in.MessageRate < 0 || in.ErrorCount < 0 {
		return nil, fmt.Errorf("%w: metrics values must be non-negative", collab.ErrInvalidInput)
	}
	sample := collab.PerformanceSample{
		MessageRate: in.MessageRate,
		LatencyP50:  in.LatencyP50,
		LatencyP95:  in.LatencyP95,
		LatencyP99:  in.LatencyP99,
		ErrorCount:  in.ErrorCount,
		RecordedAt:  time.Now().UTC(),
	}
	if uc.Conns != nil {
		sample.ActiveConnections = uc.Conns.ConnectionCount()
	}
	if err := uc.Repo.Insert(ctx, sample); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &sample, nil
}
