package task

import (
	"context"
	"encoding/json"
	"log"
	"time"

	qport "go-drafty/internal/infrastructure/queue/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
	"go-drafty/internal/pkg/collab/application/usecase"
	repoAdapter "go-drafty/internal/pkg/collab/persistence/repository/adapter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterDispatchNotificationTask binds the subscriber fan-out handler to the
// worker server. After an edit lands, every active subscriber to the document
// except the editor receives a batched notification; connected subscribers
// also get a live push through the publisher.
func RegisterDispatchNotificationTask(srv qport.Server, pool *pgxpool.Pool, push usecase.Publisher) {
	srv.Register(usecase.DocumentEditedTaskType, func(ctx context.Context, t qport.Task) error {
		var p usecase.DocumentEditedPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		repo := repoAdapter.NewPgNotificationRepository(pool)
		batch := usecase.NewBatchNotificationUseCase(repo, push)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		subscribers, err := repo.ListSubscribers(ctx, "document", p.DocumentID, collab.EventUpdated)
		if err != nil {
			return err
		}

		for _, userID := range subscribers {
			if userID == p.EditorID {
				continue
			}
			if _, err := batch.Execute(ctx, usecase.BatchNotificationInput{
				UserID:   userID,
				Type:     "document_updated",
				Title:    "Document updated",
				Message:  "A document you follow was updated",
				EntityID: p.DocumentID,
			}); err != nil {
				// Keep going: one subscriber failing must not starve the rest.
				log.Printf("dispatch notification to %s for %s: %v", userID, p.DocumentID, err)
			}
		}
		return nil
	})
}
