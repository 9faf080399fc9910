package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// RecordMetricsController stores one performance sample of the realtime
// plane. The connection count is read from the router, not the request.
type RecordMetricsController struct {
	UC *usecase.RecordMetricsUseCase
}

func NewRecordMetricsController(pool *pgxpool.Pool, conns usecase.ConnectionCounter) *RecordMetricsController {
	repo := repoAdapter.NewPgMetricsRepository(pool)
	return &RecordMetricsController{UC: usecase.NewRecordMetricsUseCase(repo, conns)}
}

type recordMetricsRequest struct {
	MessageRate float64 `json:"message_rate"`
	LatencyP50  float64 `json:"latency_p50_ms"`
	LatencyP95  float64 `json:"latency_p95_ms"`
	LatencyP99  float64 `json:"latency_p99_ms"`
	ErrorCount  int     `json:"error_count"`
}

func (h *RecordMetricsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recordMetricsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		sample, err := h.UC.Execute(ctx, usecase.RecordMetricsInput{
			MessageRate: req.MessageRate,
			LatencyP50:  req.LatencyP50,
			LatencyP95:  req.LatencyP95,
			LatencyP99:  req.LatencyP99,
			ErrorCount:  req.ErrorCount,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"sample": sample})
	}
}
