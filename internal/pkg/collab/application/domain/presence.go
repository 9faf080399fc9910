package collab

import (
	"fmt"
	"time"
)

// PresenceStatus is a user's live availability state. Transitions are
// unguarded: any status may follow any other.
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusAway    PresenceStatus = "away"
	StatusBusy    PresenceStatus = "busy"
	StatusOffline PresenceStatus = "offline"
)

// ValidStatus reports whether s is one of the known presence states.
func ValidStatus(s PresenceStatus) bool {
	switch s {
	case StatusOnline, StatusAway, StatusBusy, StatusOffline:
		return true
	}
	return false
}

// CursorPosition is the caret location within the current document.
type CursorPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// UserPresence is the single live record per user. LastActivity is monotonic
// non-decreasing across updates; concurrent updates from the same user are
// last-write-wins.
type UserPresence struct {
	UserID          string          `json:"user_id"`
	EnterpriseID    string          `json:"enterprise_id"`
	Status          PresenceStatus  `json:"status"`
	CurrentDocument string          `json:"current_document,omitempty"`
	Cursor          *CursorPosition `json:"cursor,omitempty"`
	LastActivity    time.Time       `json:"last_activity"`
}

// DefaultInactivityThreshold bounds how long a non-offline record still counts
// as active when callers exclude inactive users.
const DefaultInactivityThreshold = 15 * time.Minute

// ActiveAt reports whether the record should appear in an active-user listing
// taken at now. Offline records never appear; stale records appear only when
// includeInactive is set.
func (p UserPresence) ActiveAt(now time.Time, threshold time.Duration, includeInactive bool) bool {
	if p.Status == StatusOffline {
		return false
	}
	if includeInactive {
		return true
	}
	if threshold <= 0 {
		threshold = DefaultInactivityThreshold
	}
	return now.Sub(p.LastActivity) <= threshold
}

// Profile is the minimal public identity joined onto presence listings.
type Profile struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ActiveUser is one row of an active-user listing.
type ActiveUser struct {
	Presence UserPresence `json:"presence"`
	Profile  Profile      `json:"profile"`
}

// ActivityEventType names a tracked user action. The set is closed; anything
// else is rejected before it reaches storage.
type ActivityEventType string

const (
	ActivityDocumentView     ActivityEventType = "document_view"
	ActivityDocumentEdit     ActivityEventType = "document_edit"
	ActivityDocumentDownload ActivityEventType = "document_download"
	ActivityCommentAdd       ActivityEventType = "comment_add"
	ActivityStatusChange     ActivityEventType = "status_change"
)

var allowedActivityEvents = map[ActivityEventType]struct{}{
	ActivityDocumentView:     {},
	ActivityDocumentEdit:     {},
	ActivityDocumentDownload: {},
	ActivityCommentAdd:       {},
	ActivityStatusChange:     {},
}

// ActivityRecord is an immutable audit entry appended by trackActivity.
type ActivityRecord struct {
	ID           string            `db:"id"`
	UserID       string            `db:"user_id"`
	EnterpriseID string            `db:"enterprise_id"`
	EventType    ActivityEventType `db:"event_type"`
	DocumentID   string            `db:"document_id"`
	Metadata     map[string]string `db:"metadata"`
	CreatedAt    time.Time         `db:"created_at"`
}

// NewActivityRecord validates the event type against the allow-list and
// returns a record ready to persist.
func NewActivityRecord(userID, enterpriseID string, eventType ActivityEventType, documentID string, metadata map[string]string, now time.Time) (*ActivityRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, ok := allowedActivityEvents[eventType]; !ok {
		return nil, fmt.Errorf("%w: unknown activity event type %q", ErrInvalidInput, eventType)
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &ActivityRecord{
		UserID:       userID,
		EnterpriseID: enterpriseID,
		EventType:    eventType,
		DocumentID:   documentID,
		Metadata:     metadata,
		CreatedAt:    now,
	}, nil
}
