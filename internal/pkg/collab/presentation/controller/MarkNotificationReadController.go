package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// MarkNotificationReadController flips one of the caller's notifications to
// read.
type MarkNotificationReadController struct {
	UC *usecase.MarkNotificationReadUseCase
}

func NewMarkNotificationReadController(pool *pgxpool.Pool) *MarkNotificationReadController {
	repo := repoAdapter.NewPgNotificationRepository(pool)
	return &MarkNotificationReadController{UC: usecase.NewMarkNotificationReadUseCase(repo)}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		notificationID := c.Param("notificationId")
		if notificationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, principal.UserID, notificationID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"notification_id": notificationID, "status": "read"})
	}
}
