package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// ResponseStore abstracts persistence for the ingestion pipeline.
type ResponseStore interface {
	GetSession(id string) (*model.Session, error)
	GetActivity(id string) (*model.Activity, error)
	GetParticipant(id string) (*model.Participant, error)
	CountActivityResponses(activityID, participantID string) (int64, error)
	GetContribution(participantID, sessionID string) (*model.ContributionCounter, error)
	IncrementContribution(participantID, sessionID string, at time.Time) (int64, error)
	CreateResponse(*model.Response) error
	ListResponsesByActivity(activityID string) ([]*model.Response, error)
	ListResponsesByParticipant(participantID string) ([]*model.Response, error)
}

// ResponseService is the response ingestion pipeline: it validates a
// submission against session/activity state and quota, persists the response
// with a dimension snapshot and bumps the contribution counter.
type ResponseService struct {
	store  ResponseStore
	notify Notifier
	log    *zap.Logger
	now    func() time.Time
}

// NewResponseService creates a response service.
func NewResponseService(store ResponseStore, notify Notifier, log *zap.Logger) *ResponseService {
	return &ResponseService{store: store, notify: notify, log: log, now: time.Now}
}

// Submit runs the ingestion pipeline. Validation order is fixed; the first
// failure wins and nothing is persisted.
func (s *ResponseService) Submit(sessionID, activityID, participantID, payload string) (*model.Response, error) {
	// 1. Required fields.
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(activityID) == "" ||
		strings.TrimSpace(participantID) == "" {
		return nil, errs.Validationf("session, activity and participant ids are required")
	}
	if strings.TrimSpace(payload) == "" {
		return nil, errs.Validationf("payload is required")
	}

	now := s.now()

	// 2. Session exists and is live.
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session %s not found", sessionID)
	}
	if st := sess.EffectiveStatus(now); st != model.SessionStatusLive {
		return nil, errs.Conflictf("session not live (status %s)", st)
	}

	// 3. Strict mode locks submissions to the current activity.
	if sess.Settings.StrictCurrentActivityOnly {
		if sess.CurrentActivityID == nil || *sess.CurrentActivityID != activityID {
			return nil, errs.Conflictf("session is locked to the current activity")
		}
	}

	// 4. Activity exists, belongs here and is open.
	act, err := s.store.GetActivity(activityID)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, errs.NotFoundf("activity %s not found", activityID)
	}
	if act.SessionID != sess.ID {
		return nil, errs.Conflictf("activity %s does not belong to session %s", activityID, sessionID)
	}
	if act.Status != model.ActivityStatusOpen {
		return nil, errs.Conflictf("activity %s is not open (status %s)", activityID, act.Status)
	}

	// 5. Participant exists and belongs here.
	p, err := s.store.GetParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NotFoundf("participant %s not found", participantID)
	}
	if p.SessionID != sess.ID {
		return nil, errs.Conflictf("participant %s does not belong to session %s", participantID, sessionID)
	}

	// 6. Per-activity response limit. The activity config wins; the session
	// per-activity default applies when the config sets none. The count check
	// is read-then-check; concurrent submissions can slip one over the max.
	limit := model.ResponseLimit(act.Config)
	if limit == 0 {
		limit = sess.Settings.MaxContributionsPerParticipantPerActivity
	}
	if limit > 0 {
		count, err := s.store.CountActivityResponses(activityID, participantID)
		if err != nil {
			return nil, err
		}
		if count >= int64(limit) {
			return nil, errs.Conflictf("response limit reached (%d of %d)", count, limit)
		}
	}
	if sessionCap := sess.Settings.MaxContributionsPerParticipantPerSession; sessionCap > 0 {
		counter, err := s.store.GetContribution(participantID, sessionID)
		if err != nil {
			return nil, err
		}
		if counter != nil && counter.TotalContributions >= int64(sessionCap) {
			return nil, errs.Conflictf("session contribution limit reached (%d of %d)", counter.TotalContributions, sessionCap)
		}
	}

	resp := &model.Response{
		ID:            uuid.NewString(),
		SessionID:     sess.ID,
		ActivityID:    act.ID,
		ParticipantID: p.ID,
		Payload:       payload,
		Dimensions:    snapshotDimensions(p.Dimensions),
		CreatedAt:     now,
	}
	if err := s.store.CreateResponse(resp); err != nil {
		return nil, err
	}
	total, err := s.store.IncrementContribution(p.ID, sess.ID, now)
	if err != nil {
		return nil, err
	}

	s.log.Info("response accepted",
		zap.String("session_id", sess.ID),
		zap.String("activity_id", act.ID),
		zap.String("participant_id", p.ID),
		zap.Int64("total_contributions", total))
	if s.notify != nil {
		s.notify.Publish(sess.Code, Event{
			Name:          EventResponseAccepted,
			SessionCode:   sess.Code,
			SessionID:     sess.ID,
			ActivityID:    act.ID,
			ParticipantID: p.ID,
			ResponseID:    resp.ID,
			OccurredAt:    now,
		})
	}
	return resp, nil
}

// GetByActivity returns all responses to an activity, oldest first.
func (s *ResponseService) GetByActivity(sessionID, activityID string) ([]*model.Response, error) {
	act, err := s.store.GetActivity(activityID)
	if err != nil {
		return nil, err
	}
	if act == nil || act.SessionID != sessionID {
		return nil, errs.NotFoundf("activity %s not found in session %s", activityID, sessionID)
	}
	return s.store.ListResponsesByActivity(activityID)
}

// GetByParticipant returns one participant's responses, oldest first.
func (s *ResponseService) GetByParticipant(sessionID, participantID string) ([]*model.Response, error) {
	p, err := s.store.GetParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.SessionID != sessionID {
		return nil, errs.NotFoundf("participant %s not found in session %s", participantID, sessionID)
	}
	return s.store.ListResponsesByParticipant(participantID)
}

// snapshotDimensions copies the participant's dimensions so the stored
// response is immune to later participant mutation.
func snapshotDimensions(dims map[string]string) map[string]string {
	if len(dims) == 0 {
		return nil
	}
	out := make(map[string]string, len(dims))
	for k, v := range dims {
		out[k] = v
	}
	return out
}
