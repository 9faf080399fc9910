package usecase

import (
	"encoding/json"

	qport "go-drafty/internal/infrastructure/queue/port"
)

// DocumentEditedTaskType is the queue task name for notifying subscribers
// after an edit lands. The task type and payload live here so both the
// enqueueing use case and the worker registration share one definition.
const DocumentEditedTaskType = "collab:document_edited"

// DocumentEditedPayload is the JSON payload transported via the queue.
type DocumentEditedPayload struct {
	DocumentID string `json:"documentId"`
	EditorID   string `json:"editorId"`
}

// NewDocumentEditedTask builds the queue task for an edit event.
func NewDocumentEditedTask(documentID, editorID string) (qport.Task, error) {
	payload, err := json.Marshal(DocumentEditedPayload{DocumentID: documentID, EditorID: editorID})
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: DocumentEditedTaskType, Payload: payload}, nil
}
