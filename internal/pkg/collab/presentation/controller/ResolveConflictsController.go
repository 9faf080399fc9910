package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// ResolveConflictsController returns the position-adjusted operations a
// reconnecting client must replay past its base version.
type ResolveConflictsController struct {
	UC *usecase.ResolveConflictsUseCase
}

func NewResolveConflictsController(pool *pgxpool.Pool) *ResolveConflictsController {
	sessions := repoAdapter.NewPgSessionRepository(pool)
	log := repoAdapter.NewPgOperationLogRepository(pool)
	return &ResolveConflictsController{UC: usecase.NewResolveConflictsUseCase(sessions, log)}
}

func (h *ResolveConflictsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
			return
		}

		baseVersion := int64(0)
		if v := c.Query("base_version"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "base_version must be an integer"})
				return
			}
			baseVersion = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.ResolveConflictsInput{
			SessionID:   sessionID,
			BaseVersion: baseVersion,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(res.MergedOperations))
		for _, e := range res.MergedOperations {
			out = append(out, gin.H{
				"user_id":   e.UserID,
				"version":   e.Version,
				"operation": collab.EncodeOp(e.Op),
				"timestamp": e.Timestamp,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"resolved":          res.Resolved,
			"session_id":        sessionID,
			"base_version":      baseVersion,
			"merged_operations": out,
		})
	}
}
