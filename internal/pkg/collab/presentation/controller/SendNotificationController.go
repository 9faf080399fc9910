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

// SendNotificationController creates one notification for a target user and
// pushes it live when they are connected.
type SendNotificationController struct {
	UC *usecase.SendNotificationUseCase
}

func NewSendNotificationController(pool *pgxpool.Pool, push usecase.Publisher) *SendNotificationController {
	repo := repoAdapter.NewPgNotificationRepository(pool)
	return &SendNotificationController{UC: usecase.NewSendNotificationUseCase(repo, push)}
}

type sendNotificationRequest struct {
	UserID   string         `json:"user_id" binding:"required"`
	Type     string         `json:"type" binding:"required"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data"`
	Priority string         `json:"priority"`
}

func (h *SendNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := identityAdapter.PrincipalFrom(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req sendNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.UC.Execute(ctx, usecase.SendNotificationInput{
			UserID:   req.UserID,
			Type:     req.Type,
			Title:    req.Title,
			Message:  req.Message,
			Data:     req.Data,
			Priority: collab.NotificationPriority(req.Priority),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"notification": n})
	}
}
