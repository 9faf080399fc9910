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

// AnalyzePerformanceController runs the sliding-window latency analysis over
// recent samples and reports the verdict.
type AnalyzePerformanceController struct {
	UC *usecase.AnalyzePerformanceUseCase
}

func NewAnalyzePerformanceController(pool *pgxpool.Pool, thresholdMS float64) *AnalyzePerformanceController {
	repo := repoAdapter.NewPgMetricsRepository(pool)
	return &AnalyzePerformanceController{UC: usecase.NewAnalyzePerformanceUseCase(repo, thresholdMS)}
}

func (h *AnalyzePerformanceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		report, err := h.UC.Execute(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"report": report})
	}
}
