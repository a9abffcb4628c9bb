package model

// Request bodies for the REST API (gin binding DTOs).

// CreateSessionRequest is the body for POST /sessions.
type CreateSessionRequest struct {
	Code          string           `json:"code"`
	Title         string           `json:"title" binding:"required"`
	Goal          string           `json:"goal"`
	Context       string           `json:"context"`
	Settings      *SessionSettings `json:"settings"`
	JoinForm      *JoinFormSchema  `json:"join_form"`
	FacilitatorID string           `json:"facilitator_id"`
	GroupID       string           `json:"group_id"`
}

// UpdateSessionRequest is the body for PATCH /sessions/:id.
type UpdateSessionRequest struct {
	Title   *string `json:"title"`
	Goal    *string `json:"goal"`
	Context *string `json:"context"`
}

// SetStatusRequest is the body for PUT /sessions/:id/status.
type SetStatusRequest struct {
	Status SessionStatus `json:"status" binding:"required"`
}

// SetCurrentActivityRequest is the body for PUT /sessions/:id/current-activity.
// An empty activity id clears the pointer.
type SetCurrentActivityRequest struct {
	ActivityID string `json:"activity_id"`
}

// PublishInsightRequest is the body for POST /sessions/:id/insights.
type PublishInsightRequest struct {
	ActivityID string `json:"activity_id"`
	Insight    string `json:"insight" binding:"required"`
}

// SuggestAgendaRequest is the body for POST /sessions/:id/agenda/suggestions.
type SuggestAgendaRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

// AddActivityRequest is the body for POST /sessions/:id/activities.
type AddActivityRequest struct {
	Order           int          `json:"order"`
	Type            ActivityType `json:"type" binding:"required"`
	Title           string       `json:"title" binding:"required"`
	Prompt          string       `json:"prompt"`
	Config          string       `json:"config"`
	DurationMinutes *int         `json:"duration_minutes"`
}

// UpdateActivityRequest is the body for PATCH /sessions/:id/activities/:activity_id.
type UpdateActivityRequest struct {
	Title           *string `json:"title"`
	Prompt          *string `json:"prompt"`
	Config          *string `json:"config"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// ReorderActivitiesRequest is the body for POST /sessions/:id/activities/reorder.
type ReorderActivitiesRequest struct {
	ActivityIDs []string `json:"activity_ids" binding:"required"`
}

// JoinSessionRequest is the body for POST /sessions/:id/participants.
type JoinSessionRequest struct {
	DisplayName string            `json:"display_name"`
	IsAnonymous bool              `json:"is_anonymous"`
	Dimensions  map[string]string `json:"dimensions"`
}

// SubmitResponseRequest is the body for POST .../responses.
type SubmitResponseRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	Payload       string `json:"payload" binding:"required"`
}
