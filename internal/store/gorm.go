// Package store provides the GORM-backed persistence layer. Each service
// declares the narrow interface it needs; GormStore implements them all.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// GormStore is the PostgreSQL store.
type GormStore struct {
	db *gorm.DB
}

// New creates a store on the given GORM handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateSession persists a new session. A duplicate join code surfaces as a
// conflict error.
func (s *GormStore) CreateSession(sess *model.Session) error {
	ent := sessionToEntity(sess)
	if err := s.db.Create(ent).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflictf("session code %q already exists", sess.Code)
		}
		return err
	}
	return nil
}

// GetSession returns a session by id, or (nil, nil) when absent.
func (s *GormStore) GetSession(id string) (*model.Session, error) {
	var ent model.SessionEntity
	if err := s.db.Where("id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entityToSession(&ent), nil
}

// GetSessionByCode returns a session by its join code, or (nil, nil) when absent.
func (s *GormStore) GetSessionByCode(code string) (*model.Session, error) {
	var ent model.SessionEntity
	if err := s.db.Where("code = ?", model.NormalizeCode(code)).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entityToSession(&ent), nil
}

// SaveSession writes back the full session row.
func (s *GormStore) SaveSession(sess *model.Session) error {
	return s.db.Save(sessionToEntity(sess)).Error
}

// CreateActivity persists a new activity.
func (s *GormStore) CreateActivity(a *model.Activity) error {
	return s.db.Create(activityToEntity(a)).Error
}

// GetActivity returns an activity by id, or (nil, nil) when absent.
func (s *GormStore) GetActivity(id string) (*model.Activity, error) {
	var ent model.ActivityEntity
	if err := s.db.Where("id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entityToActivity(&ent), nil
}

// ListActivities returns the session's agenda ordered by position.
func (s *GormStore) ListActivities(sessionID string) ([]*model.Activity, error) {
	var ents []model.ActivityEntity
	if err := s.db.Where("session_id = ?", sessionID).Order("position asc").Find(&ents).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Activity, 0, len(ents))
	for i := range ents {
		out = append(out, entityToActivity(&ents[i]))
	}
	return out, nil
}

// SaveActivity writes back the full activity row.
func (s *GormStore) SaveActivity(a *model.Activity) error {
	return s.db.Save(activityToEntity(a)).Error
}

// ReorderActivities assigns each activity its 1-based position in orderedIDs.
// All updates run in one transaction: the (session_id, position) constraint is
// deferred, so it is checked once at commit and a swap never trips it between
// updates.
func (s *GormStore) ReorderActivities(sessionID string, orderedIDs []string, at time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			err := tx.Model(&model.ActivityEntity{}).
				Where("id = ? AND session_id = ?", id, sessionID).
				Updates(map[string]any{"position": pos + 1, "updated_at": at}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteActivity removes an activity row.
func (s *GormStore) DeleteActivity(id string) error {
	return s.db.Delete(&model.ActivityEntity{}, "id = ?", id).Error
}

// CreateParticipant persists a new participant.
func (s *GormStore) CreateParticipant(p *model.Participant) error {
	return s.db.Create(participantToEntity(p)).Error
}

// GetParticipant returns a participant by id, or (nil, nil) when absent.
func (s *GormStore) GetParticipant(id string) (*model.Participant, error) {
	var ent model.ParticipantEntity
	if err := s.db.Where("id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entityToParticipant(&ent), nil
}

// ListParticipants returns a session's participants by join time.
func (s *GormStore) ListParticipants(sessionID string) ([]*model.Participant, error) {
	var ents []model.ParticipantEntity
	if err := s.db.Where("session_id = ?", sessionID).Order("joined_at asc").Find(&ents).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Participant, 0, len(ents))
	for i := range ents {
		out = append(out, entityToParticipant(&ents[i]))
	}
	return out, nil
}

// CountParticipants returns the participant count of a session.
func (s *GormStore) CountParticipants(sessionID string) (int64, error) {
	var n int64
	err := s.db.Model(&model.ParticipantEntity{}).Where("session_id = ?", sessionID).Count(&n).Error
	return n, err
}

// CreateResponse persists a new response.
func (s *GormStore) CreateResponse(r *model.Response) error {
	return s.db.Create(responseToEntity(r)).Error
}

// ListResponsesByActivity returns responses to an activity, oldest first.
func (s *GormStore) ListResponsesByActivity(activityID string) ([]*model.Response, error) {
	var ents []model.ResponseEntity
	if err := s.db.Where("activity_id = ?", activityID).Order("created_at asc").Find(&ents).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Response, 0, len(ents))
	for i := range ents {
		out = append(out, entityToResponse(&ents[i]))
	}
	return out, nil
}

// ListResponsesByParticipant returns one participant's responses, oldest first.
func (s *GormStore) ListResponsesByParticipant(participantID string) ([]*model.Response, error) {
	var ents []model.ResponseEntity
	if err := s.db.Where("participant_id = ?", participantID).Order("created_at asc").Find(&ents).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Response, 0, len(ents))
	for i := range ents {
		out = append(out, entityToResponse(&ents[i]))
	}
	return out, nil
}

// CountActivityResponses returns how many responses a participant already
// submitted to an activity.
func (s *GormStore) CountActivityResponses(activityID, participantID string) (int64, error) {
	var n int64
	err := s.db.Model(&model.ResponseEntity{}).
		Where("activity_id = ? AND participant_id = ?", activityID, participantID).
		Count(&n).Error
	return n, err
}

// GetContribution returns the counter for (participant, session), or (nil, nil).
func (s *GormStore) GetContribution(participantID, sessionID string) (*model.ContributionCounter, error) {
	var ent model.ContributionCounterEntity
	err := s.db.Where("participant_id = ? AND session_id = ?", participantID, sessionID).First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model.ContributionCounter{
		ParticipantID:      ent.ParticipantID,
		SessionID:          ent.SessionID,
		TotalContributions: ent.TotalContributions,
		LastContributionAt: ent.LastContributionAt,
	}, nil
}

// IncrementContribution bumps the counter for (participant, session) in a
// single conditional insert, returning the new total. This is the atomic
// increment-and-fetch the ingestion pipeline relies on.
func (s *GormStore) IncrementContribution(participantID, sessionID string, at time.Time) (int64, error) {
	var total int64
	err := s.db.Raw(`
		INSERT INTO contribution_counters (participant_id, session_id, total_contributions, last_contribution_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (participant_id, session_id)
		DO UPDATE SET total_contributions = contribution_counters.total_contributions + 1,
		              last_contribution_at = EXCLUDED.last_contribution_at
		RETURNING total_contributions`,
		participantID, sessionID, at).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
