package model

import (
	"encoding/json"
	"time"
)

// ActivityType identifies the interaction kind of an agenda item.
type ActivityType string

const (
	ActivityTypePoll            ActivityType = "poll"
	ActivityTypeWordCloud       ActivityType = "word_cloud"
	ActivityTypeRating          ActivityType = "rating"
	ActivityTypeGeneralFeedback ActivityType = "general_feedback"
	ActivityTypeQuadrant        ActivityType = "quadrant"
	ActivityTypeFiveWhys        ActivityType = "five_whys"
)

// KnownActivityType reports whether t is a supported activity type.
func KnownActivityType(t ActivityType) bool {
	switch t {
	case ActivityTypePoll, ActivityTypeWordCloud, ActivityTypeRating,
		ActivityTypeGeneralFeedback, ActivityTypeQuadrant, ActivityTypeFiveWhys:
		return true
	}
	return false
}

// ActivityStatus represents activity state: pending -> open -> closed,
// with closed -> open via reopen.
type ActivityStatus string

const (
	ActivityStatusPending ActivityStatus = "pending"
	ActivityStatusOpen    ActivityStatus = "open"
	ActivityStatusClosed  ActivityStatus = "closed"
)

// Activity is the API view of one agenda item.
type Activity struct {
	ID              string         `json:"id"`
	SessionID       string         `json:"session_id"`
	Order           int            `json:"order"`
	Type            ActivityType   `json:"type"`
	Title           string         `json:"title"`
	Prompt          string         `json:"prompt,omitempty"`
	Config          string         `json:"config,omitempty"`
	Status          ActivityStatus `json:"status"`
	OpenedAt        *time.Time     `json:"opened_at,omitempty"`
	ClosedAt        *time.Time     `json:"closed_at,omitempty"`
	DurationMinutes int            `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ActivityDraft is a facilitator-agenda suggestion from the drafts collaborator.
type ActivityDraft struct {
	Type            ActivityType `json:"type"`
	Title           string       `json:"title"`
	Prompt          string       `json:"prompt,omitempty"`
	Config          string       `json:"config,omitempty"`
	DurationMinutes int          `json:"duration_minutes,omitempty"`
}

// PollOption is one selectable option of a poll activity.
type PollOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PollConfig is the type-specific config of a poll activity.
type PollConfig struct {
	Options                    []PollOption `json:"options"`
	AllowMultiple              bool         `json:"allow_multiple"`
	MaxResponsesPerParticipant int          `json:"max_responses_per_participant"`
}

// ParsePollConfig decodes a poll config leniently: malformed JSON yields an
// empty config rather than an error.
func ParsePollConfig(raw string) PollConfig {
	var cfg PollConfig
	if raw == "" {
		return cfg
	}
	_ = json.Unmarshal([]byte(raw), &cfg)
	return cfg
}

// WordCloudConfig is the type-specific config of a word-cloud activity.
type WordCloudConfig struct {
	MinWordLength              int      `json:"min_word_length"`
	MaxWordLength              int      `json:"max_word_length"`
	StopWords                  []string `json:"stop_words"`
	CaseSensitive              bool     `json:"case_sensitive"`
	MaxResponsesPerParticipant int      `json:"max_responses_per_participant"`
}

// ParseWordCloudConfig decodes a word-cloud config with defaults applied;
// malformed JSON falls back to defaults entirely.
func ParseWordCloudConfig(raw string) WordCloudConfig {
	cfg := WordCloudConfig{MinWordLength: 2, MaxWordLength: 30}
	if raw == "" {
		return cfg
	}
	var parsed WordCloudConfig
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return cfg
	}
	if parsed.MinWordLength <= 0 {
		parsed.MinWordLength = cfg.MinWordLength
	}
	if parsed.MaxWordLength <= 0 {
		parsed.MaxWordLength = cfg.MaxWordLength
	}
	return parsed
}

// RatingConfig is the type-specific config of a rating activity.
type RatingConfig struct {
	MinRating                  int `json:"min_rating"`
	MaxRating                  int `json:"max_rating"`
	MaxResponsesPerParticipant int `json:"max_responses_per_participant"`
}

// ParseRatingConfig decodes a rating config with a 1..5 default scale.
func ParseRatingConfig(raw string) RatingConfig {
	cfg := RatingConfig{MinRating: 1, MaxRating: 5}
	if raw == "" {
		return cfg
	}
	var parsed RatingConfig
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return cfg
	}
	if parsed.MinRating <= 0 {
		parsed.MinRating = cfg.MinRating
	}
	if parsed.MaxRating <= 0 {
		parsed.MaxRating = cfg.MaxRating
	}
	return parsed
}

// ResponseLimit extracts the per-participant response cap from an activity
// config of any type. Accepts both snake_case and PascalCase keys; returns 0
// (no limit) when absent or unparseable.
func ResponseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return 0
	}
	for _, key := range []string{"max_responses_per_participant", "maxResponsesPerParticipant", "MaxResponsesPerParticipant"} {
		if v, ok := fields[key]; ok {
			var n int
			if err := json.Unmarshal(v, &n); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
