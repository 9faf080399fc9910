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

// JoinSessionController handles joining (or lazily creating) the editing
// session for a document. One controller per endpoint.
type JoinSessionController struct {
	UC *usecase.JoinSessionUseCase
}

func NewJoinSessionController(pool *pgxpool.Pool) *JoinSessionController {
	repo := repoAdapter.NewPgSessionRepository(pool)
	access := identityAdapter.NewPgAuthorizer(pool)
	return &JoinSessionController{UC: usecase.NewJoinSessionUseCase(repo, access)}
}

type joinSessionRequest struct {
	DocumentID   string `json:"document_id" binding:"required"`
	DocumentType string `json:"document_type"`
}

func (h *JoinSessionController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req joinSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.JoinSessionInput{
			UserID:       principal.UserID,
			EnterpriseID: principal.EnterpriseID,
			DocumentID:   req.DocumentID,
			DocumentType: req.DocumentType,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id":   res.SessionID,
			"document_id":  req.DocumentID,
			"participants": res.Participants,
		})
	}
}
