package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

const maxDisplayNameLen = 120

// ParticipantStore abstracts persistence for joining.
type ParticipantStore interface {
	GetSession(id string) (*model.Session, error)
	CreateParticipant(*model.Participant) error
	GetParticipant(id string) (*model.Participant, error)
	ListParticipants(sessionID string) ([]*model.Participant, error)
}

// ParticipantService validates join requests against the session's join-form
// schema and anonymity policy.
type ParticipantService struct {
	store ParticipantStore
	log   *zap.Logger
	now   func() time.Time
}

// NewParticipantService creates a participant service.
func NewParticipantService(store ParticipantStore, log *zap.Logger) *ParticipantService {
	return &ParticipantService{store: store, log: log, now: time.Now}
}

// Join validates the request and creates a participant.
func (s *ParticipantService) Join(sessionID string, req model.JoinSessionRequest) (*model.Participant, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session %s not found", sessionID)
	}
	if req.IsAnonymous && !sess.Settings.AllowAnonymous {
		return nil, errs.Conflictf("session does not allow anonymous participants")
	}
	name := strings.TrimSpace(req.DisplayName)
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return nil, errs.Validationf("display name exceeds %d characters", maxDisplayNameLen)
	}
	if err := validateDimensions(sess.JoinForm, req.Dimensions); err != nil {
		return nil, err
	}

	p := &model.Participant{
		ID:          uuid.NewString(),
		SessionID:   sess.ID,
		DisplayName: name,
		IsAnonymous: req.IsAnonymous,
		Dimensions:  req.Dimensions,
		JoinedAt:    s.now(),
	}
	if err := s.store.CreateParticipant(p); err != nil {
		return nil, err
	}
	s.log.Info("participant joined",
		zap.String("session_id", sess.ID),
		zap.String("participant_id", p.ID),
		zap.Bool("anonymous", p.IsAnonymous))
	return p, nil
}

// GetBySession returns all participants of a session in join order.
func (s *ParticipantService) GetBySession(sessionID string) ([]*model.Participant, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errs.NotFoundf("session %s not found", sessionID)
	}
	return s.store.ListParticipants(sessionID)
}

// validateDimensions checks the answers against the join form: no unknown
// fields, no more than maxFields, every required field present and non-blank.
func validateDimensions(schema model.JoinFormSchema, dims map[string]string) error {
	if len(dims) > schema.MaxFields {
		return errs.Validationf("dimensions declare %d fields, max is %d", len(dims), schema.MaxFields)
	}
	for id := range dims {
		if schema.Field(id) == nil {
			return errs.Validationf("unknown join form field %q", id)
		}
	}
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(dims[f.ID]) == "" {
			return errs.Validationf("required join form field %q is missing", f.ID)
		}
	}
	return nil
}
