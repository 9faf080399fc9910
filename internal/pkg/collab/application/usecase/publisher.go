package usecase

// Publisher is the transport-agnostic outbound push channel. Use cases hand
// it encoded events; how they reach connected clients (websocket, SSE) is an
// infrastructure concern.
type Publisher interface {
	// PublishToDocument fans payload out to every collaborator attached to
	// the document, skipping excludeUserID; returns how many received it.
	PublishToDocument(documentID string, payload []byte, excludeUserID string) int

	// PublishToUser delivers payload to one user if connected.
	PublishToUser(userID string, payload []byte) bool
}
