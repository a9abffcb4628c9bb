package store

import (
	"encoding/json"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// Entity <-> API view conversion. Settings, join form and dimensions live in
// jsonb columns; unreadable stored JSON decodes to zero values rather than
// failing the read.

func sessionToEntity(s *model.Session) *model.SessionEntity {
	settings, _ := json.Marshal(s.Settings)
	joinForm, _ := json.Marshal(s.JoinForm)
	return &model.SessionEntity{
		ID:                s.ID,
		Code:              model.NormalizeCode(s.Code),
		Title:             s.Title,
		Goal:              s.Goal,
		Context:           s.Context,
		SettingsJSON:      string(settings),
		JoinFormJSON:      string(joinForm),
		Status:            string(s.Status),
		CurrentActivityID: s.CurrentActivityID,
		FacilitatorID:     s.FacilitatorID,
		GroupID:           s.GroupID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		ExpiresAt:         s.ExpiresAt,
		EndedAt:           s.EndedAt,
	}
}

func entityToSession(ent *model.SessionEntity) *model.Session {
	var settings model.SessionSettings
	_ = json.Unmarshal([]byte(ent.SettingsJSON), &settings)
	var joinForm model.JoinFormSchema
	_ = json.Unmarshal([]byte(ent.JoinFormJSON), &joinForm)
	return &model.Session{
		ID:                ent.ID,
		Code:              ent.Code,
		Title:             ent.Title,
		Goal:              ent.Goal,
		Context:           ent.Context,
		Settings:          settings,
		JoinForm:          joinForm,
		Status:            model.SessionStatus(ent.Status),
		CurrentActivityID: ent.CurrentActivityID,
		FacilitatorID:     ent.FacilitatorID,
		GroupID:           ent.GroupID,
		CreatedAt:         ent.CreatedAt,
		UpdatedAt:         ent.UpdatedAt,
		ExpiresAt:         ent.ExpiresAt,
		EndedAt:           ent.EndedAt,
	}
}

func activityToEntity(a *model.Activity) *model.ActivityEntity {
	return &model.ActivityEntity{
		ID:              a.ID,
		SessionID:       a.SessionID,
		Position:        a.Order,
		Type:            string(a.Type),
		Title:           a.Title,
		Prompt:          a.Prompt,
		ConfigJSON:      a.Config,
		Status:          string(a.Status),
		OpenedAt:        a.OpenedAt,
		ClosedAt:        a.ClosedAt,
		DurationMinutes: a.DurationMinutes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func entityToActivity(ent *model.ActivityEntity) *model.Activity {
	return &model.Activity{
		ID:              ent.ID,
		SessionID:       ent.SessionID,
		Order:           ent.Position,
		Type:            model.ActivityType(ent.Type),
		Title:           ent.Title,
		Prompt:          ent.Prompt,
		Config:          ent.ConfigJSON,
		Status:          model.ActivityStatus(ent.Status),
		OpenedAt:        ent.OpenedAt,
		ClosedAt:        ent.ClosedAt,
		DurationMinutes: ent.DurationMinutes,
		CreatedAt:       ent.CreatedAt,
		UpdatedAt:       ent.UpdatedAt,
	}
}

func participantToEntity(p *model.Participant) *model.ParticipantEntity {
	dims, _ := json.Marshal(p.Dimensions)
	return &model.ParticipantEntity{
		ID:             p.ID,
		SessionID:      p.SessionID,
		DisplayName:    p.DisplayName,
		IsAnonymous:    p.IsAnonymous,
		DimensionsJSON: string(dims),
		JoinedAt:       p.JoinedAt,
	}
}

func entityToParticipant(ent *model.ParticipantEntity) *model.Participant {
	var dims map[string]string
	_ = json.Unmarshal([]byte(ent.DimensionsJSON), &dims)
	return &model.Participant{
		ID:          ent.ID,
		SessionID:   ent.SessionID,
		DisplayName: ent.DisplayName,
		IsAnonymous: ent.IsAnonymous,
		Dimensions:  dims,
		JoinedAt:    ent.JoinedAt,
	}
}

func responseToEntity(r *model.Response) *model.ResponseEntity {
	dims, _ := json.Marshal(r.Dimensions)
	return &model.ResponseEntity{
		ID:             r.ID,
		SessionID:      r.SessionID,
		ActivityID:     r.ActivityID,
		ParticipantID:  r.ParticipantID,
		Payload:        r.Payload,
		DimensionsJSON: string(dims),
		CreatedAt:      r.CreatedAt,
	}
}

func entityToResponse(ent *model.ResponseEntity) *model.Response {
	var dims map[string]string
	_ = json.Unmarshal([]byte(ent.DimensionsJSON), &dims)
	return &model.Response{
		ID:            ent.ID,
		SessionID:     ent.SessionID,
		ActivityID:    ent.ActivityID,
		ParticipantID: ent.ParticipantID,
		Payload:       ent.Payload,
		Dimensions:    dims,
		CreatedAt:     ent.CreatedAt,
	}
}
