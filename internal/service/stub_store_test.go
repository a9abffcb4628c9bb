package service

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// stubStore is an in-memory store implementing every per-service store
// interface. It copies values in and out like a real database would.
type stubStore struct {
	sessions     map[string]*model.Session
	activities   map[string]*model.Activity
	participants map[string]*model.Participant
	responses    []*model.Response
	counters     map[string]*model.ContributionCounter
}

func newStubStore() *stubStore {
	return &stubStore{
		sessions:     make(map[string]*model.Session),
		activities:   make(map[string]*model.Activity),
		participants: make(map[string]*model.Participant),
		counters:     make(map[string]*model.ContributionCounter),
	}
}

func (s *stubStore) CreateSession(sess *model.Session) error {
	code := model.NormalizeCode(sess.Code)
	for _, existing := range s.sessions {
		if existing.Code == code {
			return errs.Conflictf("session code %q already exists", code)
		}
	}
	cp := *sess
	cp.Code = code
	s.sessions[cp.ID] = &cp
	return nil
}

func (s *stubStore) GetSession(id string) (*model.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *stubStore) GetSessionByCode(code string) (*model.Session, error) {
	want := model.NormalizeCode(code)
	for _, sess := range s.sessions {
		if sess.Code == want {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) SaveSession(sess *model.Session) error {
	cp := *sess
	s.sessions[cp.ID] = &cp
	return nil
}

func (s *stubStore) CreateActivity(a *model.Activity) error {
	cp := *a
	s.activities[cp.ID] = &cp
	return nil
}

func (s *stubStore) GetActivity(id string) (*model.Activity, error) {
	a, ok := s.activities[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *stubStore) ListActivities(sessionID string) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, a := range s.activities {
		if a.SessionID == sessionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *stubStore) SaveActivity(a *model.Activity) error {
	cp := *a
	s.activities[cp.ID] = &cp
	return nil
}

func (s *stubStore) ReorderActivities(sessionID string, orderedIDs []string, at time.Time) error {
	for _, id := range orderedIDs {
		a, ok := s.activities[id]
		if !ok || a.SessionID != sessionID {
			return errs.Conflictf("activity %s does not belong to session %s", id, sessionID)
		}
	}
	for pos, id := range orderedIDs {
		s.activities[id].Order = pos + 1
		s.activities[id].UpdatedAt = at
	}
	// Mirror the deferred unique (session, position) constraint: check once
	// after all updates, like a commit would.
	seen := make(map[int]string)
	for _, a := range s.activities {
		if a.SessionID != sessionID {
			continue
		}
		if other, dup := seen[a.Order]; dup {
			return errs.Conflictf("activities %s and %s share position %d", other, a.ID, a.Order)
		}
		seen[a.Order] = a.ID
	}
	return nil
}

func (s *stubStore) DeleteActivity(id string) error {
	delete(s.activities, id)
	return nil
}

func (s *stubStore) CreateParticipant(p *model.Participant) error {
	cp := *p
	s.participants[cp.ID] = &cp
	return nil
}

func (s *stubStore) GetParticipant(id string) (*model.Participant, error) {
	p, ok := s.participants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubStore) ListParticipants(sessionID string) ([]*model.Participant, error) {
	var out []*model.Participant
	for _, p := range s.participants {
		if p.SessionID == sessionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (s *stubStore) CountParticipants(sessionID string) (int64, error) {
	var n int64
	for _, p := range s.participants {
		if p.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CreateResponse(r *model.Response) error {
	cp := *r
	s.responses = append(s.responses, &cp)
	return nil
}

func (s *stubStore) ListResponsesByActivity(activityID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, r := range s.responses {
		if r.ActivityID == activityID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *stubStore) ListResponsesByParticipant(participantID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, r := range s.responses {
		if r.ParticipantID == participantID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *stubStore) CountActivityResponses(activityID, participantID string) (int64, error) {
	var n int64
	for _, r := range s.responses {
		if r.ActivityID == activityID && r.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) GetContribution(participantID, sessionID string) (*model.ContributionCounter, error) {
	c, ok := s.counters[participantID+"/"+sessionID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *stubStore) IncrementContribution(participantID, sessionID string, at time.Time) (int64, error) {
	key := participantID + "/" + sessionID
	c, ok := s.counters[key]
	if !ok {
		c = &model.ContributionCounter{ParticipantID: participantID, SessionID: sessionID}
		s.counters[key] = c
	}
	c.TotalContributions++
	c.LastContributionAt = at
	return c.TotalContributions, nil
}

// stubNotifier records published events.
type stubNotifier struct {
	events []Event
	closed []string
}

func (n *stubNotifier) Publish(code string, ev Event) { n.events = append(n.events, ev) }
func (n *stubNotifier) CloseSession(code string)      { n.closed = append(n.closed, code) }

func (n *stubNotifier) names() []string {
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Name)
	}
	return out
}

func nopLogger() *zap.Logger { return zap.NewNop() }

var testNow = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

// seedSession inserts a live session with permissive defaults.
func seedSession(st *stubStore, id, code string) *model.Session {
	sess := &model.Session{
		ID:    id,
		Code:  code,
		Title: "Test workshop",
		Settings: model.SessionSettings{
			AllowAnonymous: true,
			TTLMinutes:     480,
		},
		JoinForm: model.JoinFormSchema{
			MaxFields: 5,
			Fields: []model.JoinFormField{
				{ID: "department", Label: "Department", Type: "text", Required: false},
			},
		},
		Status:    model.SessionStatusLive,
		CreatedAt: testNow,
		UpdatedAt: testNow,
		ExpiresAt: testNow.Add(8 * time.Hour),
	}
	st.sessions[sess.ID] = sess
	return sess
}

// seedActivity inserts an activity in the given status.
func seedActivity(st *stubStore, id, sessionID string, order int, typ model.ActivityType, status model.ActivityStatus, config string) *model.Activity {
	act := &model.Activity{
		ID:        id,
		SessionID: sessionID,
		Order:     order,
		Type:      typ,
		Title:     "Activity " + id,
		Config:    config,
		Status:    status,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	st.activities[act.ID] = act
	return act
}

// seedParticipant inserts a participant.
func seedParticipant(st *stubStore, id, sessionID string, dims map[string]string) *model.Participant {
	p := &model.Participant{
		ID:          id,
		SessionID:   sessionID,
		DisplayName: "P " + id,
		Dimensions:  dims,
		JoinedAt:    testNow,
	}
	st.participants[p.ID] = p
	return p
}
