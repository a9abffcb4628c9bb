package model

import (
	"strings"
	"time"
)

// SessionStatus represents workshop session state.
type SessionStatus string

const (
	SessionStatusDraft   SessionStatus = "draft"
	SessionStatusLive    SessionStatus = "live"
	SessionStatusEnded   SessionStatus = "ended"
	SessionStatusExpired SessionStatus = "expired"
)

// KnownSessionStatus reports whether s is a status a caller may set.
// Expired is derived from ExpiresAt and never set directly.
func KnownSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionStatusDraft, SessionStatusLive, SessionStatusEnded:
		return true
	}
	return false
}

// SessionSettings controls participation policy for a session.
type SessionSettings struct {
	AllowAnonymous                            bool `json:"allow_anonymous"`
	StrictCurrentActivityOnly                 bool `json:"strict_current_activity_only"`
	TTLMinutes                                int  `json:"ttl_minutes"`
	MaxContributionsPerParticipantPerSession  int  `json:"max_contributions_per_participant_per_session"`
	MaxContributionsPerParticipantPerActivity int  `json:"max_contributions_per_participant_per_activity"`
}

// JoinFormField is one field of the session join form.
type JoinFormField struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// JoinFormSchema describes the fields participants answer when joining.
// The answers become the participant's dimensions, usable as dashboard filters.
type JoinFormSchema struct {
	MaxFields int             `json:"max_fields"`
	Fields    []JoinFormField `json:"fields"`
}

// Field returns the schema field with the given id, or nil.
func (s JoinFormSchema) Field(id string) *JoinFormField {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i]
		}
	}
	return nil
}

// Session is the API view of a workshop session (not GORM entity).
type Session struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Title             string          `json:"title"`
	Goal              string          `json:"goal,omitempty"`
	Context           string          `json:"context,omitempty"`
	Settings          SessionSettings `json:"settings"`
	JoinForm          JoinFormSchema  `json:"join_form"`
	Status            SessionStatus   `json:"status"`
	CurrentActivityID *string         `json:"current_activity_id,omitempty"`
	FacilitatorID     string          `json:"facilitator_id,omitempty"`
	GroupID           string          `json:"group_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ExpiresAt         time.Time       `json:"expires_at"`
	EndedAt           *time.Time      `json:"ended_at,omitempty"`
}

// EffectiveStatus reports the status at a given instant: a session past its
// ExpiresAt that was never explicitly ended is Expired.
func (s *Session) EffectiveStatus(now time.Time) SessionStatus {
	if s.Status != SessionStatusEnded && now.After(s.ExpiresAt) {
		return SessionStatusExpired
	}
	return s.Status
}

// NormalizeCode canonicalizes a join code (codes are case-insensitive).
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Participant is the API view of a joined attendee.
type Participant struct {
	ID          string            `json:"id"`
	SessionID   string            `json:"session_id"`
	DisplayName string            `json:"display_name,omitempty"`
	IsAnonymous bool              `json:"is_anonymous"`
	Dimensions  map[string]string `json:"dimensions,omitempty"`
	JoinedAt    time.Time         `json:"joined_at"`
}

// Response is the API view of one submission by a participant to an activity.
// Dimensions is the participant's dimension snapshot at submission time.
type Response struct {
	ID            string            `json:"id"`
	SessionID     string            `json:"session_id"`
	ActivityID    string            `json:"activity_id"`
	ParticipantID string            `json:"participant_id"`
	Payload       string            `json:"payload"`
	Dimensions    map[string]string `json:"dimensions,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ContributionCounter is the running per-session tally for one participant.
type ContributionCounter struct {
	ParticipantID      string    `json:"participant_id"`
	SessionID          string    `json:"session_id"`
	TotalContributions int64     `json:"total_contributions"`
	LastContributionAt time.Time `json:"last_contribution_at"`
}
