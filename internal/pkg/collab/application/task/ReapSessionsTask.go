package task

import (
	"context"
	"log"
	"time"

	qport "go-drafty/internal/infrastructure/queue/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"
	repository "go-drafty/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReapSessionsTaskType is the queue task name for the periodic sweep that
// removes editing sessions whose participants have all gone quiet.
const ReapSessionsTaskType = "collab:reap_sessions"

// ReapInterval is how often the sweep re-schedules itself.
const ReapInterval = 10 * time.Minute

// reapGrace is how long past the inactivity threshold a participant may be
// silent before the session counts them as gone.
const reapGrace = 2 * collab.DefaultInactivityThreshold

// EnqueueReapSessions schedules the first sweep. Subsequent runs re-enqueue
// themselves; UniqueTTL keeps restarts from stacking sweeps.
func EnqueueReapSessions(ctx context.Context, client qport.Client) error {
	_, err := client.Enqueue(ctx, qport.Task{Type: ReapSessionsTaskType}, qport.EnqueueOption{
		Queue:     "collab",
		ProcessIn: ReapInterval,
		UniqueTTL: ReapInterval,
	})
	return err
}

// RegisterReapSessionsTask binds the sweep handler to the worker server.
func RegisterReapSessionsTask(srv qport.Server, client qport.Client, pool *pgxpool.Pool, presence repository.PresenceRepository) {
	srv.Register(ReapSessionsTaskType, func(ctx context.Context, t qport.Task) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		sessions := repoAdapter.NewPgSessionRepository(pool)
		reaped, err := ReapIdleSessions(ctx, sessions, presence, time.Now().UTC())
		if err != nil {
			log.Printf("session reap: %v", err)
		} else if reaped > 0 {
			log.Printf("session reap: removed %d idle sessions", reaped)
		}

		if err := EnqueueReapSessions(ctx, client); err != nil {
			log.Printf("session reap reschedule: %v", err)
		}
		return nil
	})
}

// ReapIdleSessions deletes every session whose participants are all offline
// or silent past the grace period. Operation history is durable and survives
// the session row.
func ReapIdleSessions(ctx context.Context, sessions repository.SessionRepository, presence repository.PresenceRepository, now time.Time) (int, error) {
	all, err := sessions.ListSessions(ctx)
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, s := range all {
		if !sessionIdle(ctx, presence, s, now) {
			continue
		}
		if err := sessions.DeleteSession(ctx, s.ID); err != nil {
			log.Printf("session reap delete %s: %v", s.ID, err)
			continue
		}
		reaped++
	}
	return reaped, nil
}

func sessionIdle(ctx context.Context, presence repository.PresenceRepository, s collab.EditingSession, now time.Time) bool {
	if len(s.Participants) == 0 {
		return now.Sub(s.CreatedAt) > reapGrace
	}
	for _, userID := range s.Participants {
		p, err := presence.Get(ctx, userID)
		if err != nil {
			// Presence store unreachable: keep the session, next sweep decides.
			return false
		}
		if p == nil {
			continue
		}
		if p.Status != collab.StatusOffline && now.Sub(p.LastActivity) <= reapGrace {
			return false
		}
	}
	return true
}
