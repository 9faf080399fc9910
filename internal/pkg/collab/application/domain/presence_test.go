package collab

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestActiveAtExcludesOfflineUnconditionally(t *testing.T) {
	p := UserPresence{Status: StatusOffline, LastActivity: now}
	if p.ActiveAt(now, 0, false) || p.ActiveAt(now, 0, true) {
		t.Fatal("offline record must never be listed")
	}
}

func TestActiveAtStaleRecord(t *testing.T) {
	p := UserPresence{Status: StatusAway, LastActivity: now.Add(-20 * time.Minute)}
	if p.ActiveAt(now, 0, false) {
		t.Error("record stale past the threshold must be excluded by default")
	}
	if !p.ActiveAt(now, 0, true) {
		t.Error("includeInactive must keep the stale record")
	}
}

func TestActiveAtFreshRecord(t *testing.T) {
	p := UserPresence{Status: StatusOnline, LastActivity: now.Add(-5 * time.Minute)}
	if !p.ActiveAt(now, 0, false) {
		t.Error("fresh non-offline record must be listed")
	}
}

func TestStatusTransitionsAreUnguarded(t *testing.T) {
	// Any known status may follow any other, including leaving offline.
	seq := []PresenceStatus{StatusOffline, StatusOnline, StatusAway, StatusOnline, StatusBusy, StatusOffline}
	for _, s := range seq {
		if !ValidStatus(s) {
			t.Fatalf("status %q rejected", s)
		}
	}
	if ValidStatus("invisible") {
		t.Fatal("unknown status accepted")
	}
}

func TestNewActivityRecordAllowList(t *testing.T) {
	allowed := []ActivityEventType{
		ActivityDocumentView, ActivityDocumentEdit, ActivityDocumentDownload,
		ActivityCommentAdd, ActivityStatusChange,
	}
	for _, ev := range allowed {
		if _, err := NewActivityRecord("u1", "e1", ev, "doc1", nil, now); err != nil {
			t.Errorf("%s: unexpected error %v", ev, err)
		}
	}

	if _, err := NewActivityRecord("u1", "e1", "document_delete", "doc1", nil, now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unlisted event type must fail with ErrInvalidInput, got %v", err)
	}
	if _, err := NewActivityRecord("", "e1", ActivityDocumentView, "doc1", nil, now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing user must fail with ErrInvalidInput, got %v", err)
	}
}
