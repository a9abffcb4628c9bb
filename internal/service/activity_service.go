package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

const maxPromptLen = 1000

// ActivityStore abstracts persistence for the activity lifecycle. A session
// and its activities are mutated together so the one-open-activity rule and
// the current-activity pointer stay consistent.
type ActivityStore interface {
	GetSession(id string) (*model.Session, error)
	SaveSession(*model.Session) error
	CreateActivity(*model.Activity) error
	GetActivity(id string) (*model.Activity, error)
	ListActivities(sessionID string) ([]*model.Activity, error)
	SaveActivity(*model.Activity) error
	ReorderActivities(sessionID string, orderedIDs []string, at time.Time) error
	DeleteActivity(id string) error
}

// AgendaDrafter is the consumed AI boundary returning activity drafts for a
// topic. Implementations live outside the core.
type AgendaDrafter interface {
	Suggest(ctx context.Context, topic string, count int) ([]model.ActivityDraft, error)
}

// ActivityService manages the agenda of a session: add, edit, reorder,
// delete and the pending -> open -> closed state machine.
type ActivityService struct {
	store   ActivityStore
	drafter AgendaDrafter
	notify  Notifier
	log     *zap.Logger
	now     func() time.Time
}

// NewActivityService creates an activity service. drafter may be nil when
// agenda suggestions are not configured.
func NewActivityService(store ActivityStore, drafter AgendaDrafter, notify Notifier, log *zap.Logger) *ActivityService {
	return &ActivityService{store: store, drafter: drafter, notify: notify, log: log, now: time.Now}
}

// Add validates and appends a new pending activity at the requested order,
// shifting later activities to keep positions dense.
func (s *ActivityService) Add(sessionID string, req model.AddActivityRequest) (*model.Activity, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if req.Order <= 0 {
		return nil, errs.Validationf("order must be positive")
	}
	if !model.KnownActivityType(req.Type) {
		return nil, errs.Validationf("unknown activity type %q", req.Type)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, errs.Validationf("title exceeds %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(req.Prompt) > maxPromptLen {
		return nil, errs.Validationf("prompt exceeds %d characters", maxPromptLen)
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return nil, errs.Validationf("duration must be positive")
	}

	existing, err := s.store.ListActivities(sessionID)
	if err != nil {
		return nil, err
	}
	order := req.Order
	if order > len(existing)+1 {
		order = len(existing) + 1
	}
	// Shift activities at or after the insertion point.
	for i := len(existing) - 1; i >= 0; i-- {
		if existing[i].Order >= order {
			existing[i].Order++
			if err := s.store.SaveActivity(existing[i]); err != nil {
				return nil, err
			}
		}
	}

	now := s.now()
	act := &model.Activity{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Order:     order,
		Type:      req.Type,
		Title:     title,
		Prompt:    strings.TrimSpace(req.Prompt),
		Config:    req.Config,
		Status:    model.ActivityStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.DurationMinutes != nil {
		act.DurationMinutes = *req.DurationMinutes
	}
	if err := s.store.CreateActivity(act); err != nil {
		return nil, err
	}
	s.publish(sess, Event{Name: EventAgendaUpdated, SessionID: sess.ID, ActivityID: act.ID})
	return act, nil
}

// Update edits title/prompt/config/duration for fields present in the request.
func (s *ActivityService) Update(sessionID, activityID string, req model.UpdateActivityRequest) (*model.Activity, error) {
	sess, act, err := s.sessionActivity(sessionID, activityID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errs.Validationf("title must not be blank")
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return nil, errs.Validationf("title exceeds %d characters", maxTitleLen)
		}
		act.Title = title
	}
	if req.Prompt != nil {
		if utf8.RuneCountInString(*req.Prompt) > maxPromptLen {
			return nil, errs.Validationf("prompt exceeds %d characters", maxPromptLen)
		}
		act.Prompt = strings.TrimSpace(*req.Prompt)
	}
	if req.Config != nil {
		act.Config = *req.Config
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, errs.Validationf("duration must be positive")
		}
		act.DurationMinutes = *req.DurationMinutes
	}
	act.UpdatedAt = s.now()
	if err := s.store.SaveActivity(act); err != nil {
		return nil, err
	}
	s.publish(sess, Event{Name: EventAgendaUpdated, SessionID: sess.ID, ActivityID: act.ID})
	return act, nil
}

// Open transitions a pending activity to open. Opening is idempotent on an
// already-open activity; a closed activity must go through Reopen. Any other
// open activity in the session is closed and the session's current-activity
// pointer moves to this one.
func (s *ActivityService) Open(sessionID, activityID string) (*model.Activity, error) {
	sess, act, err := s.sessionActivity(sessionID, activityID)
	if err != nil {
		return nil, err
	}
	switch act.Status {
	case model.ActivityStatusOpen:
		return act, nil
	case model.ActivityStatusClosed:
		return nil, errs.Conflictf("activity %s is closed; use reopen", activityID)
	}
	return s.makeOpen(sess, act)
}

// Reopen transitions a closed activity back to open.
func (s *ActivityService) Reopen(sessionID, activityID string) (*model.Activity, error) {
	sess, act, err := s.sessionActivity(sessionID, activityID)
	if err != nil {
		return nil, err
	}
	if act.Status != model.ActivityStatusClosed {
		return nil, errs.Conflictf("activity %s is %s, only closed activities can be reopened", activityID, act.Status)
	}
	return s.makeOpen(sess, act)
}

func (s *ActivityService) makeOpen(sess *model.Session, act *model.Activity) (*model.Activity, error) {
	now := s.now()
	if st := sess.EffectiveStatus(now); st == model.SessionStatusEnded || st == model.SessionStatusExpired {
		return nil, errs.Conflictf("session is %s", st)
	}

	// At most one open activity per session: close the others first.
	siblings, err := s.store.ListActivities(sess.ID)
	if err != nil {
		return nil, err
	}
	for _, sib := range siblings {
		if sib.ID != act.ID && sib.Status == model.ActivityStatusOpen {
			sib.Status = model.ActivityStatusClosed
			sib.ClosedAt = &now
			sib.UpdatedAt = now
			if err := s.store.SaveActivity(sib); err != nil {
				return nil, err
			}
			s.publish(sess, Event{
				Name:       EventActivityStatusChanged,
				SessionID:  sess.ID,
				ActivityID: sib.ID,
				Status:     string(model.ActivityStatusClosed),
			})
		}
	}

	act.Status = model.ActivityStatusOpen
	act.OpenedAt = &now
	act.ClosedAt = nil
	act.UpdatedAt = now
	if err := s.store.SaveActivity(act); err != nil {
		return nil, err
	}

	sess.CurrentActivityID = &act.ID
	sess.UpdatedAt = now
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}

	s.publish(sess, Event{
		Name:       EventActivityStatusChanged,
		SessionID:  sess.ID,
		ActivityID: act.ID,
		Status:     string(model.ActivityStatusOpen),
	})
	s.publish(sess, Event{Name: EventCurrentActivityChanged, SessionID: sess.ID, ActivityID: act.ID})
	return act, nil
}

// Close transitions an open activity to closed and clears the session's
// current-activity pointer when it pointed here.
func (s *ActivityService) Close(sessionID, activityID string) (*model.Activity, error) {
	sess, act, err := s.sessionActivity(sessionID, activityID)
	if err != nil {
		return nil, err
	}
	if act.Status != model.ActivityStatusOpen {
		return nil, errs.Conflictf("activity %s is %s, only open activities can be closed", activityID, act.Status)
	}
	now := s.now()
	act.Status = model.ActivityStatusClosed
	act.ClosedAt = &now
	act.UpdatedAt = now
	if err := s.store.SaveActivity(act); err != nil {
		return nil, err
	}
	if sess.CurrentActivityID != nil && *sess.CurrentActivityID == act.ID {
		sess.CurrentActivityID = nil
		sess.UpdatedAt = now
		if err := s.store.SaveSession(sess); err != nil {
			return nil, err
		}
		s.publish(sess, Event{Name: EventCurrentActivityChanged, SessionID: sess.ID})
	}
	s.publish(sess, Event{
		Name:       EventActivityStatusChanged,
		SessionID:  sess.ID,
		ActivityID: act.ID,
		Status:     string(model.ActivityStatusClosed),
	})
	return act, nil
}

// Reorder re-assigns order by 1-based position in the supplied list, which
// must be a permutation of exactly the session's current activity ids.
func (s *ActivityService) Reorder(sessionID string, activityIDs []string) ([]*model.Activity, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.ListActivities(sessionID)
	if err != nil {
		return nil, err
	}
	if len(activityIDs) != len(existing) {
		return nil, errs.Conflictf("reorder list has %d ids, session has %d activities", len(activityIDs), len(existing))
	}
	byID := make(map[string]*model.Activity, len(existing))
	for _, a := range existing {
		byID[a.ID] = a
	}
	seen := make(map[string]struct{}, len(activityIDs))
	for _, id := range activityIDs {
		if _, dup := seen[id]; dup {
			return nil, errs.Conflictf("duplicate activity id %s in reorder list", id)
		}
		seen[id] = struct{}{}
		if _, ok := byID[id]; !ok {
			return nil, errs.Conflictf("activity %s does not belong to session %s", id, sessionID)
		}
	}

	// The store applies every position in one transaction so the unique
	// (session, position) constraint only sees the final assignment.
	if err := s.store.ReorderActivities(sessionID, activityIDs, s.now()); err != nil {
		return nil, err
	}
	out, err := s.store.ListActivities(sessionID)
	if err != nil {
		return nil, err
	}
	s.publish(sess, Event{Name: EventAgendaUpdated, SessionID: sess.ID})
	return out, nil
}

// Delete removes a pending activity and renumbers the remaining agenda.
func (s *ActivityService) Delete(sessionID, activityID string) error {
	sess, act, err := s.sessionActivity(sessionID, activityID)
	if err != nil {
		return err
	}
	if act.Status != model.ActivityStatusPending {
		return errs.Conflictf("activity %s is %s, only pending activities can be deleted", activityID, act.Status)
	}
	if err := s.store.DeleteActivity(act.ID); err != nil {
		return err
	}
	remaining, err := s.store.ListActivities(sessionID)
	if err != nil {
		return err
	}
	now := s.now()
	for pos, a := range remaining {
		if a.Order != pos+1 {
			a.Order = pos + 1
			a.UpdatedAt = now
			if err := s.store.SaveActivity(a); err != nil {
				return err
			}
		}
	}
	s.publish(sess, Event{Name: EventActivityDeleted, SessionID: sess.ID, ActivityID: act.ID})
	return nil
}

// GetAgenda returns the session's activities in order.
func (s *ActivityService) GetAgenda(sessionID string) ([]*model.Activity, error) {
	if _, err := s.session(sessionID); err != nil {
		return nil, err
	}
	return s.store.ListActivities(sessionID)
}

// SuggestAgenda asks the drafts collaborator for activity suggestions and
// appends them to the agenda as pending activities.
func (s *ActivityService) SuggestAgenda(ctx context.Context, sessionID, topic string, count int) ([]*model.Activity, error) {
	if s.drafter == nil {
		return nil, errs.Conflictf("agenda suggestions are not configured")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.Validationf("topic is required")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if st := sess.EffectiveStatus(s.now()); st == model.SessionStatusEnded || st == model.SessionStatusExpired {
		return nil, errs.Conflictf("session is %s", st)
	}
	drafts, err := s.drafter.Suggest(ctx, topic, count)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.ListActivities(sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := len(existing)
	created := make([]*model.Activity, 0, len(drafts))
	for _, d := range drafts {
		title := strings.TrimSpace(d.Title)
		if title == "" || !model.KnownActivityType(d.Type) {
			continue
		}
		if r := []rune(title); len(r) > maxTitleLen {
			title = string(r[:maxTitleLen])
		}
		order++
		act := &model.Activity{
			ID:              uuid.NewString(),
			SessionID:       sessionID,
			Order:           order,
			Type:            d.Type,
			Title:           title,
			Prompt:          strings.TrimSpace(d.Prompt),
			Config:          d.Config,
			Status:          model.ActivityStatusPending,
			DurationMinutes: d.DurationMinutes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.store.CreateActivity(act); err != nil {
			return nil, err
		}
		created = append(created, act)
	}
	if len(created) > 0 {
		s.publish(sess, Event{Name: EventAgendaUpdated, SessionID: sess.ID})
	}
	s.log.Info("agenda suggestions applied",
		zap.String("session_id", sessionID),
		zap.Int("created", len(created)))
	return created, nil
}

func (s *ActivityService) session(sessionID string) (*model.Session, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session %s not found", sessionID)
	}
	return sess, nil
}

func (s *ActivityService) sessionActivity(sessionID, activityID string) (*model.Session, *model.Activity, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	act, err := s.store.GetActivity(activityID)
	if err != nil {
		return nil, nil, err
	}
	if act == nil {
		return nil, nil, errs.NotFoundf("activity %s not found", activityID)
	}
	if act.SessionID != sess.ID {
		return nil, nil, errs.Conflictf("activity %s does not belong to session %s", activityID, sessionID)
	}
	return sess, act, nil
}

func (s *ActivityService) publish(sess *model.Session, ev Event) {
	if s.notify == nil {
		return
	}
	ev.SessionCode = sess.Code
	ev.OccurredAt = s.now()
	s.notify.Publish(sess.Code, ev)
}
