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

// SubscribeController registers the caller's interest in change events on an
// entity. Resubscribing merges event sets instead of duplicating rows.
type SubscribeController struct {
	UC *usecase.SubscribeToUpdatesUseCase
}

func NewSubscribeController(pool *pgxpool.Pool) *SubscribeController {
	repo := repoAdapter.NewPgNotificationRepository(pool)
	return &SubscribeController{UC: usecase.NewSubscribeToUpdatesUseCase(repo)}
}

type subscribeRequest struct {
	EntityType string   `json:"entity_type" binding:"required"`
	EntityID   string   `json:"entity_id" binding:"required"`
	Events     []string `json:"events" binding:"required"`
}

func (h *SubscribeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		events := make([]collab.EventKind, len(req.Events))
		for i, ev := range req.Events {
			events[i] = collab.EventKind(ev)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.SubscribeToUpdatesInput{
			UserID:     principal.UserID,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			Events:     events,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"subscription_id": res.SubscriptionID,
			"entity_type":     req.EntityType,
			"entity_id":       req.EntityID,
			"events":          res.Events,
		})
	}
}
