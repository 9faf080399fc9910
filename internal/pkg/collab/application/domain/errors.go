package collab

import "errors"

// Domain-level errors for the collaboration core. Every validation failure is
// raised before any mutation, so callers can map these directly to a response
// without worrying about partial state.
var (
	ErrAuthenticationRequired = errors.New("collab: authentication required")
	ErrAccessDenied           = errors.New("collab: access to document denied")
	ErrNotFound               = errors.New("collab: record not found")
	ErrInvalidInput           = errors.New("collab: invalid input")
	ErrNotParticipant         = errors.New("collab: user is not a participant in the session")
)
