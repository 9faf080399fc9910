package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"
)

// AnalyzePerformanceUseCase runs the sliding-window latency check over the
// most recent samples. A degraded verdict is logged but otherwise only
// reported; acting on it is the caller's concern.
type AnalyzePerformanceUseCase struct {
	Repo        repository.MetricsRepository
	ThresholdMS float64
}

func NewAnalyzePerformanceUseCase(repo repository.MetricsRepository, thresholdMS float64) *AnalyzePerformanceUseCase {
	return &AnalyzePerformanceUseCase{Repo: repo, ThresholdMS: thresholdMS}
}

func (uc *AnalyzePerformanceUseCase) Execute(ctx context.Context) (*collab.PerformanceReport, error) {
	samples, err := uc.Repo.ListRecent(ctx, collab.AnalysisFetchDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	report := collab.AnalyzeSamples(samples, uc.ThresholdMS, time.Now().UTC())
	if report.Degraded {
		log.Printf("performance degraded: avg p95 %.2fms over %d samples", report.AvgP95, report.WindowSize)
	}
	return &report, nil
}
