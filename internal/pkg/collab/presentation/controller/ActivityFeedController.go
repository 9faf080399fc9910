package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// ActivityFeedController serves the recent activity feed for one document.
type ActivityFeedController struct {
	UC *usecase.GetActivityFeedUseCase
}

func NewActivityFeedController(pool *pgxpool.Pool) *ActivityFeedController {
	repo := repoAdapter.NewPgActivityRepository(pool)
	return &ActivityFeedController{UC: usecase.NewGetActivityFeedUseCase(repo)}
}

func (h *ActivityFeedController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID := c.Param("documentId")
		if documentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "documentId is required"})
			return
		}

		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		feed, err := h.UC.Execute(ctx, usecase.GetActivityFeedInput{DocumentID: documentID, Limit: limit})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"document_id": documentID,
			"activity":    feed,
			"count":       len(feed),
		})
	}
}
