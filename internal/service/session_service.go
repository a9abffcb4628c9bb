package service

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/config"
	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

const (
	maxCodeLen    = 32
	maxTitleLen   = 200
	maxFreeText   = 2000
	codeGenRetry  = 5
	genCodeLength = 6
)

// SessionStore abstracts persistence for the session lifecycle.
type SessionStore interface {
	CreateSession(*model.Session) error
	GetSession(id string) (*model.Session, error)
	GetSessionByCode(code string) (*model.Session, error)
	SaveSession(*model.Session) error
	GetActivity(id string) (*model.Activity, error)
}

// SessionService manages workshop session lifecycle.
type SessionService struct {
	store  SessionStore
	cfg    *config.Config
	notify Notifier
	log    *zap.Logger

	now     func() time.Time
	codeGen func() string
}

// NewSessionService creates a session service.
func NewSessionService(store SessionStore, cfg *config.Config, notify Notifier, log *zap.Logger) *SessionService {
	return &SessionService{
		store:   store,
		cfg:     cfg,
		notify:  notify,
		log:     log,
		now:     time.Now,
		codeGen: defaultJoinCode,
	}
}

func defaultJoinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:genCodeLength])
}

// Create validates and persists a new session in Draft status.
// ExpiresAt is fixed at creation from the settings TTL.
func (s *SessionService) Create(req *model.CreateSessionRequest) (*model.Session, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, errs.Validationf("title exceeds %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(req.Goal) > maxFreeText || utf8.RuneCountInString(req.Context) > maxFreeText {
		return nil, errs.Validationf("goal/context exceeds %d characters", maxFreeText)
	}
	if req.Settings == nil {
		return nil, errs.Validationf("settings are required")
	}
	if req.JoinForm == nil {
		return nil, errs.Validationf("join form schema is required")
	}
	settings := *req.Settings
	if settings.TTLMinutes <= 0 {
		settings.TTLMinutes = s.cfg.DefaultSessionTTLMinutes
	}
	if err := s.validateSettings(settings); err != nil {
		return nil, err
	}
	joinForm := *req.JoinForm
	if joinForm.MaxFields <= 0 {
		joinForm.MaxFields = s.cfg.JoinFormMaxFields
	}
	if err := s.validateJoinForm(joinForm); err != nil {
		return nil, err
	}

	code := model.NormalizeCode(req.Code)
	explicit := code != ""
	if explicit {
		if utf8.RuneCountInString(code) > maxCodeLen {
			return nil, errs.Validationf("code exceeds %d characters", maxCodeLen)
		}
		existing, err := s.store.GetSessionByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errs.Conflictf("session code %q already exists", code)
		}
	}

	now := s.now()
	sess := &model.Session{
		ID:            uuid.NewString(),
		Title:         title,
		Goal:          strings.TrimSpace(req.Goal),
		Context:       strings.TrimSpace(req.Context),
		Settings:      settings,
		JoinForm:      joinForm,
		Status:        model.SessionStatusDraft,
		FacilitatorID: req.FacilitatorID,
		GroupID:       req.GroupID,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(settings.TTLMinutes) * time.Minute),
	}

	attempts := 1
	if !explicit {
		attempts = codeGenRetry
	}
	for i := 0; i < attempts; i++ {
		if explicit {
			sess.Code = code
		} else {
			sess.Code = s.codeGen()
		}
		err := s.store.CreateSession(sess)
		if err == nil {
			s.log.Info("session created",
				zap.String("session_id", sess.ID),
				zap.String("code", sess.Code))
			return sess, nil
		}
		if errs.IsConflict(err) && !explicit && i < attempts-1 {
			continue
		}
		return nil, err
	}
	return nil, errs.Conflictf("could not allocate a unique session code")
}

// Get returns a session by id.
func (s *SessionService) Get(id string) (*model.Session, error) {
	sess, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session %s not found", id)
	}
	return sess, nil
}

// GetByCode returns a session by its join code (case-insensitive).
func (s *SessionService) GetByCode(code string) (*model.Session, error) {
	sess, err := s.store.GetSessionByCode(code)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session with code %q not found", model.NormalizeCode(code))
	}
	return sess, nil
}

// Update replaces title/goal/context for fields present in the request.
func (s *SessionService) Update(id string, req model.UpdateSessionRequest) (*model.Session, error) {
	sess, err := s.Get(id)
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
		sess.Title = title
	}
	if req.Goal != nil {
		if utf8.RuneCountInString(*req.Goal) > maxFreeText {
			return nil, errs.Validationf("goal exceeds %d characters", maxFreeText)
		}
		sess.Goal = strings.TrimSpace(*req.Goal)
	}
	if req.Context != nil {
		if utf8.RuneCountInString(*req.Context) > maxFreeText {
			return nil, errs.Validationf("context exceeds %d characters", maxFreeText)
		}
		sess.Context = strings.TrimSpace(*req.Context)
	}
	sess.UpdatedAt = s.now()
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetStatus sets the session status. Beyond existence and a known status
// value, transition legality is the caller's responsibility.
func (s *SessionService) SetStatus(id string, status model.SessionStatus) (*model.Session, error) {
	if !model.KnownSessionStatus(status) {
		return nil, errs.Validationf("unknown session status %q", status)
	}
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess.Status = status
	sess.UpdatedAt = now
	if status == model.SessionStatusEnded && sess.EndedAt == nil {
		sess.EndedAt = &now
	}
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	s.publish(sess, Event{
		Name:      EventSessionStatusChanged,
		SessionID: sess.ID,
		Status:    string(status),
	})
	if status == model.SessionStatusEnded && s.notify != nil {
		s.notify.CloseSession(sess.Code)
	}
	return sess, nil
}

// SetCurrentActivity sets or clears the current-activity pointer.
func (s *SessionService) SetCurrentActivity(id, activityID string) (*model.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if activityID == "" {
		sess.CurrentActivityID = nil
	} else {
		act, err := s.store.GetActivity(activityID)
		if err != nil {
			return nil, err
		}
		if act == nil {
			return nil, errs.NotFoundf("activity %s not found", activityID)
		}
		if act.SessionID != sess.ID {
			return nil, errs.Conflictf("activity %s does not belong to session %s", activityID, id)
		}
		sess.CurrentActivityID = &act.ID
	}
	sess.UpdatedAt = s.now()
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	s.publish(sess, Event{
		Name:       EventCurrentActivityChanged,
		SessionID:  sess.ID,
		ActivityID: activityID,
	})
	return sess, nil
}

// UpdateSettings fully replaces the session settings, re-validated with the
// same rules as creation.
func (s *SessionService) UpdateSettings(id string, settings model.SessionSettings) (*model.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if settings.TTLMinutes <= 0 {
		settings.TTLMinutes = s.cfg.DefaultSessionTTLMinutes
	}
	if err := s.validateSettings(settings); err != nil {
		return nil, err
	}
	// ExpiresAt stays fixed from creation; a settings update never extends it.
	sess.Settings = settings
	sess.UpdatedAt = s.now()
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// UpdateJoinForm fully replaces the join form schema.
func (s *SessionService) UpdateJoinForm(id string, schema model.JoinFormSchema) (*model.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if schema.MaxFields <= 0 {
		schema.MaxFields = s.cfg.JoinFormMaxFields
	}
	if err := s.validateJoinForm(schema); err != nil {
		return nil, err
	}
	sess.JoinForm = schema
	sess.UpdatedAt = s.now()
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// PublishInsight pushes an out-of-band aggregate insight to the session's
// subscribers.
func (s *SessionService) PublishInsight(id, activityID, insight string) error {
	if strings.TrimSpace(insight) == "" {
		return errs.Validationf("insight is required")
	}
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]string{"insight": insight})
	s.publish(sess, Event{
		Name:       EventInsightPublished,
		SessionID:  sess.ID,
		ActivityID: activityID,
		Payload:    payload,
	})
	return nil
}

func (s *SessionService) publish(sess *model.Session, ev Event) {
	if s.notify == nil {
		return
	}
	ev.SessionCode = sess.Code
	ev.OccurredAt = s.now()
	s.notify.Publish(sess.Code, ev)
}

func (s *SessionService) validateSettings(settings model.SessionSettings) error {
	if settings.MaxContributionsPerParticipantPerSession < 0 ||
		settings.MaxContributionsPerParticipantPerActivity < 0 {
		return errs.Validationf("contribution caps must not be negative")
	}
	return nil
}

func (s *SessionService) validateJoinForm(schema model.JoinFormSchema) error {
	if len(schema.Fields) > schema.MaxFields {
		return errs.Validationf("join form declares %d fields, max is %d", len(schema.Fields), schema.MaxFields)
	}
	seen := make(map[string]struct{}, len(schema.Fields))
	for _, f := range schema.Fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return errs.Validationf("join form field id must not be blank")
		}
		if _, dup := seen[id]; dup {
			return errs.Validationf("duplicate join form field id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
