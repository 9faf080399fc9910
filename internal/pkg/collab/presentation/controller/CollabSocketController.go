package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-drafty/internal/infrastructure/cache/port"
	identityAdapter "go-drafty/internal/infrastructure/identity/adapter"
	identityport "go-drafty/internal/infrastructure/identity/port"
	qport "go-drafty/internal/infrastructure/queue/port"
	"go-drafty/internal/infrastructure/realtime"
	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
)

// CollabSocketController handles the websocket endpoint for realtime
// collaboration traffic: document rooms, edit fan-out and presence
// heartbeats over one authenticated connection.
type CollabSocketController struct {
	router          *realtime.Router
	joinUC          *usecase.JoinSessionUseCase
	editUC          *usecase.BroadcastEditUseCase
	presenceUC      *usecase.UpdatePresenceUseCase
	inflightTimeout time.Duration
}

func NewCollabSocketController(pool *pgxpool.Pool, cache cacheport.Cache, router *realtime.Router, queue qport.Client) *CollabSocketController {
	sessions := repoAdapter.NewPgSessionRepository(pool)
	log := repoAdapter.NewPgOperationLogRepository(pool)
	presence := repoAdapter.NewRedisPresenceRepository(cache)
	access := identityAdapter.NewPgAuthorizer(pool)
	push := realtime.NewPublisher(router)
	return &CollabSocketController{
		router:          router,
		joinUC:          usecase.NewJoinSessionUseCase(sessions, access),
		editUC:          usecase.NewBroadcastEditUseCase(sessions, log, push, queue),
		presenceUC:      usecase.NewUpdatePresenceUseCase(presence),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when the frontend
		// origin list is settled.
		return true
	},
}

type inboundFrame struct {
	Type         string                 `json:"type"`
	DocumentID   string                 `json:"document_id,omitempty"`
	DocumentType string                 `json:"document_type,omitempty"`
	SessionID    string                 `json:"session_id,omitempty"`
	Operation    *collab.OpEnvelope     `json:"operation,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Cursor       *collab.CursorPosition `json:"cursor,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type         string   `json:"type"`
	DocumentID   string   `json:"document_id,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
	Version      int64    `json:"version,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the connection and processes frames until the client
// disconnects.
func (ctl *CollabSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identityAdapter.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(principal.UserID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
			ctl.markOffline(principal)
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, principal, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			case "edit":
				ctl.handleEdit(c, conn, principal.UserID, frame)
			case "presence":
				ctl.handlePresence(c, conn, principal, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *CollabSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, principal identityport.Principal, frame inboundFrame) {
	if frame.DocumentID == "" {
		ctl.replyError(conn, "bad_request", "document_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	res, err := ctl.joinUC.Execute(ctx, usecase.JoinSessionInput{
		UserID:       principal.UserID,
		EnterpriseID: principal.EnterpriseID,
		DocumentID:   frame.DocumentID,
		DocumentType: frame.DocumentType,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ctl.router.Join(frame.DocumentID, conn)

	ack := ackFrame{
		Type:         "joined",
		DocumentID:   frame.DocumentID,
		SessionID:    res.SessionID,
		Participants: res.Participants,
	}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *CollabSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.DocumentID == "" {
		ctl.replyError(conn, "bad_request", "document_id is required")
		return
	}
	ctl.router.Leave(frame.DocumentID, conn)

	if payload, err := json.Marshal(ackFrame{Type: "left", DocumentID: frame.DocumentID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *CollabSocketController) handleEdit(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if frame.SessionID == "" {
		ctl.replyError(conn, "bad_request", "session_id is required")
		return
	}
	if frame.Operation == nil {
		ctl.replyError(conn, "bad_request", "operation is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	entry, err := ctl.editUC.Execute(ctx, usecase.BroadcastEditInput{
		SessionID: frame.SessionID,
		UserID:    userID,
		Operation: *frame.Operation,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	// Fan-out to the room happens inside the use case; the editor gets a
	// version ack so its local buffer tracks the authoritative sequence.
	ack := ackFrame{Type: "edit_ack", SessionID: entry.SessionID, Version: entry.Version}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *CollabSocketController) handlePresence(c *gin.Context, conn *realtime.Connection, principal identityport.Principal, frame inboundFrame) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.presenceUC.Execute(ctx, usecase.UpdatePresenceInput{
		UserID:          principal.UserID,
		EnterpriseID:    principal.EnterpriseID,
		Status:          collab.PresenceStatus(frame.Status),
		CurrentDocument: frame.DocumentID,
		Cursor:          frame.Cursor,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	if payload, err := json.Marshal(ackFrame{Type: "presence_ack"}); err == nil {
		_ = conn.Send(payload)
	}
}

// markOffline records the disconnect so active-user listings drop the user
// without waiting for the staleness threshold. Best effort on teardown.
func (ctl *CollabSocketController) markOffline(principal identityport.Principal) {
	ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
	defer cancel()
	_, _ = ctl.presenceUC.Execute(ctx, usecase.UpdatePresenceInput{
		UserID:       principal.UserID,
		EnterpriseID: principal.EnterpriseID,
		Status:       collab.StatusOffline,
	})
}

func (ctl *CollabSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, collab.ErrAccessDenied):
		ctl.replyError(conn, "forbidden", "access to document denied")
	case errors.Is(err, collab.ErrNotParticipant):
		ctl.replyError(conn, "forbidden", "user is not a participant in the session")
	case errors.Is(err, collab.ErrNotFound):
		ctl.replyError(conn, "not_found", "record not found")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *CollabSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
