package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "go-drafty/internal/infrastructure/cache/port"
	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// UpdatePresenceController handles the presence heartbeat endpoint.
type UpdatePresenceController struct {
	UC *usecase.UpdatePresenceUseCase
}

func NewUpdatePresenceController(cache cacheport.Cache) *UpdatePresenceController {
	repo := repoAdapter.NewRedisPresenceRepository(cache)
	return &UpdatePresenceController{UC: usecase.NewUpdatePresenceUseCase(repo)}
}

type updatePresenceRequest struct {
	Status          string                 `json:"status" binding:"required"`
	CurrentDocument string                 `json:"current_document"`
	Cursor          *collab.CursorPosition `json:"cursor"`
}

func (h *UpdatePresenceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req updatePresenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rec, err := h.UC.Execute(ctx, usecase.UpdatePresenceInput{
			UserID:          principal.UserID,
			EnterpriseID:    principal.EnterpriseID,
			Status:          collab.PresenceStatus(req.Status),
			CurrentDocument: req.CurrentDocument,
			Cursor:          req.Cursor,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"presence": rec})
	}
}
