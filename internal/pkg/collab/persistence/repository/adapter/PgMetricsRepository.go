package adapter

import (
	"context"
	"errors"

	collab "go-drafty/internal/pkg/collab/application/domain"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgMetricsRepository struct {
	pool *pgxpool.Pool
}

func NewPgMetricsRepository(pool *pgxpool.Pool) *PgMetricsRepository {
	return &PgMetricsRepository{pool: pool}
}

var _ repository.MetricsRepository = (*PgMetricsRepository)(nil)

func (r *PgMetricsRepository) Insert(ctx context.Context, s collab.PerformanceSample) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMetricsRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO collab.metrics_sample (active_connections, message_rate, latency_p50, latency_p95, latency_p99, error_count, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.ActiveConnections, s.MessageRate, s.LatencyP50, s.LatencyP95, s.LatencyP99, s.ErrorCount, s.RecordedAt)
	return err
}

func (r *PgMetricsRepository) ListRecent(ctx context.Context, limit int) ([]collab.PerformanceSample, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMetricsRepository: nil pool")
	}
	if limit <= 0 {
		limit = collab.AnalysisFetchDepth
	}
	rows, err := r.pool.Query(ctx, `
		SELECT active_connections, message_rate, latency_p50, latency_p95, latency_p99, error_count, recorded_at
		FROM collab.metrics_sample
		ORDER BY recorded_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []collab.PerformanceSample
	for rows.Next() {
		var s collab.PerformanceSample
		if err := rows.Scan(&s.ActiveConnections, &s.MessageRate, &s.LatencyP50, &s.LatencyP95, &s.LatencyP99, &s.ErrorCount, &s.RecordedAt); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
