package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	qport "go-drafty/internal/infrastructure/queue/port"
	collab "go-drafty/internal/pkg/collab/application/domain"
)

// In-memory repository fakes. They are deliberately not safe for concurrent
// use; the tests exercising them are sequential.

type fakeSessionRepo struct {
	sessions map[string]*collab.EditingSession
	nextID   int
	failNext error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*collab.EditingSession{}}
}

func (r *fakeSessionRepo) EnsureSession(_ context.Context, documentID, documentType, enterpriseID string, createdAt time.Time) (string, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return "", err
	}
	for id, s := range r.sessions {
		if s.DocumentID == documentID {
			return id, nil
		}
	}
	r.nextID++
	id := fmt.Sprintf("session-%d", r.nextID)
	r.sessions[id] = &collab.EditingSession{
		ID:           id,
		DocumentID:   documentID,
		DocumentType: documentType,
		EnterpriseID: enterpriseID,
		CreatedAt:    createdAt,
	}
	return id, nil
}

func (r *fakeSessionRepo) AddParticipant(_ context.Context, sessionID, userID string) error {
	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("no session %s", sessionID)
	}
	if !s.HasParticipant(userID) {
		s.Participants = append(s.Participants, userID)
	}
	return nil
}

func (r *fakeSessionRepo) FindSession(_ context.Context, sessionID string) (*collab.EditingSession, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Participants = append([]string(nil), s.Participants...)
	return &cp, nil
}

func (r *fakeSessionRepo) FindSessionByDocument(_ context.Context, documentID string) (*collab.EditingSession, error) {
	for id, s := range r.sessions {
		if s.DocumentID == documentID {
			return r.FindSession(context.Background(), id)
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) ListSessions(_ context.Context) ([]collab.EditingSession, error) {
	out := make([]collab.EditingSession, 0, len(r.sessions))
	for id := range r.sessions {
		s, _ := r.FindSession(context.Background(), id)
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) DeleteSession(_ context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

type fakeOperationLog struct {
	entries map[string][]collab.EditOperation
}

func newFakeOperationLog() *fakeOperationLog {
	return &fakeOperationLog{entries: map[string][]collab.EditOperation{}}
}

func (r *fakeOperationLog) Append(_ context.Context, sessionID, userID string, op collab.Op, at time.Time) (collab.EditOperation, error) {
	entry := collab.EditOperation{
		SessionID: sessionID,
		UserID:    userID,
		Op:        op,
		Version:   int64(len(r.entries[sessionID]) + 1),
		Timestamp: at,
	}
	r.entries[sessionID] = append(r.entries[sessionID], entry)
	return entry, nil
}

func (r *fakeOperationLog) ListAfter(_ context.Context, sessionID string, afterVersion int64) ([]collab.EditOperation, error) {
	var out []collab.EditOperation
	for _, e := range r.entries[sessionID] {
		if e.Version > afterVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePresenceRepo struct {
	records  map[string]collab.UserPresence
	failures int
	upserts  int
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{records: map[string]collab.UserPresence{}}
}

func (r *fakePresenceRepo) Upsert(_ context.Context, p collab.UserPresence) error {
	r.upserts++
	if r.failures > 0 {
		r.failures--
		return fmt.Errorf("transient store failure")
	}
	if prev, ok := r.records[p.UserID]; ok && prev.LastActivity.After(p.LastActivity) {
		p.LastActivity = prev.LastActivity
	}
	r.records[p.UserID] = p
	return nil
}

func (r *fakePresenceRepo) Get(_ context.Context, userID string) (*collab.UserPresence, error) {
	p, ok := r.records[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePresenceRepo) ListByEnterprise(_ context.Context, enterpriseID string) ([]collab.UserPresence, error) {
	var out []collab.UserPresence
	for _, p := range r.records {
		if p.EnterpriseID == enterpriseID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	records []collab.ActivityRecord
}

func (r *fakeActivityRepo) Insert(_ context.Context, rec collab.ActivityRecord) (string, error) {
	id := fmt.Sprintf("activity-%d", len(r.records)+1)
	rec.ID = id
	r.records = append(r.records, rec)
	return id, nil
}

func (r *fakeActivityRepo) ListByDocument(_ context.Context, documentID string, limit int) ([]collab.ActivityRecord, error) {
	var out []collab.ActivityRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].DocumentID == documentID {
			out = append(out, r.records[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []collab.Notification
	subscriptions []collab.Subscription
}

func (r *fakeNotificationRepo) Insert(_ context.Context, n collab.Notification) (string, error) {
	n.ID = fmt.Sprintf("notification-%d", len(r.notifications)+1)
	r.notifications = append(r.notifications, n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) MergeRecent(_ context.Context, userID, notifType, entityID string, window time.Duration) (string, int, bool, error) {
	cutoff := time.Now().UTC().Add(-window)
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := &r.notifications[i]
		if n.UserID != userID || n.Type != notifType || n.Status != collab.NotificationUnread {
			continue
		}
		if n.CreatedAt.Before(cutoff) {
			continue
		}
		n.Count++
		n.Message = collab.AggregateMessage(n.Count)
		ids, _ := n.Data["aggregated_ids"].([]string)
		n.Data["aggregated_ids"] = append(ids, entityID)
		return n.ID, n.Count, true, nil
	}
	return "", 0, false, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) (bool, error) {
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.ID == notificationID && n.UserID == userID {
			n.Status = collab.NotificationRead
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) UpsertSubscription(_ context.Context, sub collab.Subscription) (string, error) {
	for i := range r.subscriptions {
		ex := &r.subscriptions[i]
		if ex.UserID == sub.UserID && ex.EntityType == sub.EntityType && ex.EntityID == sub.EntityID {
			ex.Events = collab.MergeEvents(ex.Events, sub.Events)
			ex.Active = true
			return ex.ID, nil
		}
	}
	sub.ID = fmt.Sprintf("subscription-%d", len(r.subscriptions)+1)
	r.subscriptions = append(r.subscriptions, sub)
	return sub.ID, nil
}

func (r *fakeNotificationRepo) ListSubscribers(_ context.Context, entityType, entityID string, event collab.EventKind) ([]string, error) {
	var out []string
	for _, sub := range r.subscriptions {
		if !sub.Active || sub.EntityType != entityType || sub.EntityID != entityID {
			continue
		}
		for _, ev := range sub.Events {
			if ev == event {
				out = append(out, sub.UserID)
				break
			}
		}
	}
	return out, nil
}

type fakeMetricsRepo struct {
	samples []collab.PerformanceSample
	failure error
}

func (r *fakeMetricsRepo) Insert(_ context.Context, s collab.PerformanceSample) error {
	if r.failure != nil {
		return r.failure
	}
	r.samples = append(r.samples, s)
	return nil
}

func (r *fakeMetricsRepo) ListRecent(_ context.Context, limit int) ([]collab.PerformanceSample, error) {
	out := make([]collab.PerformanceSample, 0, limit)
	for i := len(r.samples) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.samples[i])
	}
	return out, nil
}

type fakeDirectory struct {
	profiles map[string]collab.Profile
}

func (d *fakeDirectory) FindProfiles(_ context.Context, userIDs []string) (map[string]collab.Profile, error) {
	out := map[string]collab.Profile{}
	for _, id := range userIDs {
		if p, ok := d.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeAuthorizer struct {
	granted map[string]bool
	err     error
}

func (a *fakeAuthorizer) HasDocumentAccess(_ context.Context, userID, documentID string) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return a.granted[userID+"/"+documentID], nil
}

type publishedFrame struct {
	target  string
	payload []byte
	exclude string
}

type fakePublisher struct {
	toDocument []publishedFrame
	toUser     []publishedFrame
}

func (p *fakePublisher) PublishToDocument(documentID string, payload []byte, excludeUserID string) int {
	p.toDocument = append(p.toDocument, publishedFrame{target: documentID, payload: payload, exclude: excludeUserID})
	return 1
}

func (p *fakePublisher) PublishToUser(userID string, payload []byte) bool {
	p.toUser = append(p.toUser, publishedFrame{target: userID, payload: payload})
	return true
}

type fakeQueueClient struct {
	enqueued []qport.Task
	opts     []qport.EnqueueOption
}

func (c *fakeQueueClient) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	c.enqueued = append(c.enqueued, t)
	if len(opts) > 0 {
		c.opts = append(c.opts, opts[0])
	}
	return fmt.Sprintf("task-%d", len(c.enqueued)), nil
}

func (c *fakeQueueClient) Close() error { return nil }

func containsFrame(frames []publishedFrame, substr string) bool {
	for _, f := range frames {
		if strings.Contains(string(f.payload), substr) {
			return true
		}
	}
	return false
}
