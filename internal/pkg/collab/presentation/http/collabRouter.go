package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-drafty/internal/infrastructure/cache/port"
	qport "go-drafty/internal/infrastructure/queue/port"
	"go-drafty/internal/infrastructure/realtime"
	"go-drafty/internal/pkg/collab/presentation/controller"
)

// RegisterRoutes binds the collaboration endpoints under the given router
// group. Per-endpoint controllers are constructed here and wired directly.
// The group is expected to carry the identity middleware already.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, router *realtime.Router) {
	push := realtime.NewPublisher(router)

	joinCtl := controller.NewJoinSessionController(pool)
	editCtl := controller.NewBroadcastEditController(pool, push, client)
	resolveCtl := controller.NewResolveConflictsController(pool)
	presenceCtl := controller.NewUpdatePresenceController(cache)
	activeCtl := controller.NewActiveUsersController(pool, cache)
	trackCtl := controller.NewTrackActivityController(pool)
	feedCtl := controller.NewActivityFeedController(pool)
	notifyCtl := controller.NewSendNotificationController(pool, push)
	readCtl := controller.NewMarkNotificationReadController(pool)
	subscribeCtl := controller.NewSubscribeController(pool)
	metricsCtl := controller.NewRecordMetricsController(pool, router)
	analyzeCtl := controller.NewAnalyzePerformanceController(pool, 0)
	socketCtl := controller.NewCollabSocketController(pool, cache, router, client)

	// POST /api/v1/collab/sessions/join -> join or lazily create a session
	g.POST("/collab/sessions/join", joinCtl.Handle())

	// POST /api/v1/collab/sessions/:sessionId/edits -> append and fan out an edit
	g.POST("/collab/sessions/:sessionId/edits", editCtl.Handle())

	// GET /api/v1/collab/sessions/:sessionId/operations -> replay-ready operations past base_version
	g.GET("/collab/sessions/:sessionId/operations", resolveCtl.Handle())

	// PUT /api/v1/collab/presence -> presence heartbeat
	g.PUT("/collab/presence", presenceCtl.Handle())

	// GET /api/v1/collab/presence/active -> active users in the caller's enterprise
	g.GET("/collab/presence/active", activeCtl.Handle())

	// POST /api/v1/collab/activity -> append an activity record
	g.POST("/collab/activity", trackCtl.Handle())

	// GET /api/v1/collab/documents/:documentId/activity -> per-document feed
	g.GET("/collab/documents/:documentId/activity", feedCtl.Handle())

	// POST /api/v1/collab/notifications -> create and push a notification
	g.POST("/collab/notifications", notifyCtl.Handle())

	// POST /api/v1/collab/notifications/:notificationId/read -> mark read
	g.POST("/collab/notifications/:notificationId/read", readCtl.Handle())

	// POST /api/v1/collab/subscriptions -> subscribe to entity events
	g.POST("/collab/subscriptions", subscribeCtl.Handle())

	// POST /api/v1/collab/metrics -> record a performance sample
	g.POST("/collab/metrics", metricsCtl.Handle())

	// GET /api/v1/collab/metrics/report -> sliding-window latency analysis
	g.GET("/collab/metrics/report", analyzeCtl.Handle())

	// GET /api/v1/collab/ws -> websocket endpoint for realtime collaboration
	g.GET("/collab/ws", socketCtl.Handle())
}
