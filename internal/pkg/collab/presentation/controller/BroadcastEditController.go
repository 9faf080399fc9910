package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	qport "go-drafty/internal/infrastructure/queue/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// BroadcastEditController accepts one edit operation for a session, appends
// it to the operation log and fans it out to the other participants.
type BroadcastEditController struct {
	UC *usecase.BroadcastEditUseCase
}

func NewBroadcastEditController(pool *pgxpool.Pool, push usecase.Publisher, queue qport.Client) *BroadcastEditController {
	sessions := repoAdapter.NewPgSessionRepository(pool)
	log := repoAdapter.NewPgOperationLogRepository(pool)
	return &BroadcastEditController{UC: usecase.NewBroadcastEditUseCase(sessions, log, push, queue)}
}

type broadcastEditRequest struct {
	Operation collab.OpEnvelope `json:"operation" binding:"required"`
}

func (h *BroadcastEditController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		sessionID := c.Param("sessionId")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
			return
		}

		var req broadcastEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		entry, err := h.UC.Execute(ctx, usecase.BroadcastEditInput{
			SessionID: sessionID,
			UserID:    principal.UserID,
			Operation: req.Operation,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": entry.SessionID,
			"version":    entry.Version,
			"operation":  collab.EncodeOp(entry.Op),
			"timestamp":  entry.Timestamp,
		})
	}
}
