package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-drafty/internal/infrastructure/cache/port"
	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// ActiveUsersController lists who is currently active in the caller's
// enterprise, optionally narrowed to one document.
type ActiveUsersController struct {
	UC *usecase.GetActiveUsersUseCase
}

func NewActiveUsersController(pool *pgxpool.Pool, cache cacheport.Cache) *ActiveUsersController {
	presence := repoAdapter.NewRedisPresenceRepository(cache)
	directory := repoAdapter.NewPgDirectoryRepository(pool)
	return &ActiveUsersController{UC: usecase.NewGetActiveUsersUseCase(presence, directory)}
}

func (h *ActiveUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.UC.Execute(ctx, usecase.GetActiveUsersInput{
			EnterpriseID:    principal.EnterpriseID,
			DocumentID:      c.Query("document_id"),
			IncludeInactive: c.Query("include_inactive") == "true",
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users": users,
			"count": len(users),
		})
	}
}
