package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// TrackActivityController appends one activity record for the caller.
type TrackActivityController struct {
	UC *usecase.TrackActivityUseCase
}

func NewTrackActivityController(pool *pgxpool.Pool) *TrackActivityController {
	repo := repoAdapter.NewPgActivityRepository(pool)
	return &TrackActivityController{UC: usecase.NewTrackActivityUseCase(repo)}
}

type trackActivityRequest struct {
	EventType  string            `json:"event_type" binding:"required"`
	DocumentID string            `json:"document_id"`
	Metadata   map[string]string `json:"metadata"`
}

func (h *TrackActivityController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req trackActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rec, err := h.UC.Execute(ctx, usecase.TrackActivityInput{
			UserID:       principal.UserID,
			EnterpriseID: principal.EnterpriseID,
			EventType:    collab.ActivityEventType(req.EventType),
			DocumentID:   req.DocumentID,
			Metadata:     req.Metadata,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"activity": rec})
	}
}
