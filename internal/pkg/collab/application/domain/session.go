package collab

import "time"

// EditingSession binds a document to its active collaborator set. At most one
// live session exists per document; it is created lazily on first join.
// Participants grow via join and are never removed while the session lives.
type EditingSession struct {
	ID           string    `db:"id"`
	DocumentID   string    `db:"document_id"`
	DocumentType string    `db:"document_type"`
	EnterpriseID string    `db:"enterprise_id"`
	Participants []string  `db:"-"`
	CreatedAt    time.Time `db:"created_at"`
}

// HasParticipant tells whether userID belongs to the session.
func (s *EditingSession) HasParticipant(userID string) bool {
	if s == nil {
		return false
	}
	for _, id := range s.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
