package service

import (
	"encoding/json"
	"time"
)

// Event names published to session subscribers.
const (
	EventSessionStatusChanged   = "session_status_changed"
	EventCurrentActivityChanged = "current_activity_changed"
	EventActivityStatusChanged  = "activity_status_changed"
	EventActivityDeleted        = "activity_deleted"
	EventAgendaUpdated          = "agenda_updated"
	EventResponseAccepted       = "response_accepted"
	EventInsightPublished       = "insight_published"
	EventSessionEnded           = "session_ended"
)

// Event is one lifecycle/response/aggregate notification fanned out to the
// subscribers of a session. Identifier fields are set as applicable.
type Event struct {
	Name          string          `json:"event"`
	SessionCode   string          `json:"session_code"`
	SessionID     string          `json:"session_id,omitempty"`
	ActivityID    string          `json:"activity_id,omitempty"`
	ParticipantID string          `json:"participant_id,omitempty"`
	ResponseID    string          `json:"response_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Notifier is the fan-out boundary. Delivery is fire-and-forget, at least
// once to current subscribers; callers never depend on delivery success.
type Notifier interface {
	Publish(sessionCode string, ev Event)
	// CloseSession tells the gateway no further events will follow for the code.
	CloseSession(sessionCode string)
}
