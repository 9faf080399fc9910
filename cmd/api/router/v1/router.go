package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-drafty/internal/infrastructure/cache/port"
	identityport "go-drafty/internal/infrastructure/identity/port"
	qport "go-drafty/internal/infrastructure/queue/port"
	"go-drafty/internal/infrastructure/realtime"
	httpHandler "go-drafty/internal/pkg/collab/presentation/http"

	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1. Every
// collaboration endpoint sits behind the identity middleware.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, router *realtime.Router, resolver identityport.Resolver) {
	v1 := r.Group("/api/v1")
	v1.Use(identityAdapter.Middleware(resolver))
	httpHandler.RegisterRoutes(v1, pool, cache, client, router)
}
