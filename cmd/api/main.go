package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	v1 "go-drafty/cmd/api/router/v1"
	cacheAdapter "go-drafty/internal/infrastructure/cache/adapter"
	cacheport "go-drafty/internal/infrastructure/cache/port"
	"go-drafty/internal/infrastructure/database"
	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	queueAdapter "go-drafty/internal/infrastructure/queue/adapter"
	"go-drafty/internal/infrastructure/realtime"
	"go-drafty/internal/pkg/collab/application/task"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer cache.Close()

	resolver, err := identityAdapter.NewJWTResolverFromEnv()
	if err != nil {
		log.Fatalf("failed to configure identity: %v", err)
	}

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	wsRouter := realtime.NewRouter()
	defer wsRouter.Close()

	// In-process background workers: subscriber fan-out and session reaping.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go runWorkers(workerCtx, pool, cache, wsRouter, queueClient)

	if err := task.EnqueueReapSessions(ctx, queueClient); err != nil {
		log.Printf("Warning: could not schedule session reaping: %v", err)
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, cache, queueClient, wsRouter, resolver)

	srv := &http.Server{Addr: listenAddr(), Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Block until a shutdown signal, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

func runWorkers(ctx context.Context, pool *pgxpool.Pool, cache cacheport.Cache, wsRouter *realtime.Router, client *queueAdapter.AsynqClient) {
	srv, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Printf("Warning: background workers disabled: %v", err)
		return
	}

	push := realtime.NewPublisher(wsRouter)
	presence := repoAdapter.NewRedisPresenceRepository(cache)
	task.RegisterDispatchNotificationTask(srv, pool, push)
	task.RegisterReapSessionsTask(srv, client, pool, presence)

	if err := srv.Run(ctx); err != nil {
		log.Printf("worker server: %v", err)
	}
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
