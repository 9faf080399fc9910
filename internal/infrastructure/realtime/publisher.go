package realtime

// Publisher adapts the Router to the push-channel contract consumed by the
// application layer.
type Publisher struct {
	router *Router
}

func NewPublisher(router *Router) *Publisher {
	return &Publisher{router: router}
}

func (p *Publisher) PublishToDocument(documentID string, payload []byte, excludeUserID string) int {
	return p.router.Broadcast(documentID, payload, excludeUserID)
}

func (p *Publisher) PublishToUser(userID string, payload []byte) bool {
	return p.router.NotifyUser(userID, payload)
}
