package model

import "time"

// SessionEntity is the persisted workshop session (GORM).
type SessionEntity struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	Code              string     `gorm:"size:32;not null;uniqueIndex"`
	Title             string     `gorm:"size:200;not null"`
	Goal              string     `gorm:"type:text"`
	Context           string     `gorm:"type:text"`
	SettingsJSON      string     `gorm:"column:settings;type:jsonb;not null"`
	JoinFormJSON      string     `gorm:"column:join_form;type:jsonb;not null"`
	Status            string     `gorm:"size:20;not null;default:draft"`
	CurrentActivityID *string    `gorm:"type:uuid"`
	FacilitatorID     string     `gorm:"size:64;index"`
	GroupID           string     `gorm:"size:64;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
	ExpiresAt         time.Time  `gorm:"not null"`
	EndedAt           *time.Time `gorm:"column:ended_at"`
}

func (SessionEntity) TableName() string { return "sessions" }

// ActivityEntity is one agenda item within a session (GORM).
type ActivityEntity struct {
	ID              string     `gorm:"type:uuid;primaryKey"`
	SessionID       string     `gorm:"type:uuid;not null;index;uniqueIndex:ux_activity_order,priority:1"`
	Position        int        `gorm:"column:position;not null;uniqueIndex:ux_activity_order,priority:2"`
	Type            string     `gorm:"size:30;not null"`
	Title           string     `gorm:"size:200;not null"`
	Prompt          string     `gorm:"size:1000"`
	ConfigJSON      string     `gorm:"column:config;type:jsonb"`
	Status          string     `gorm:"size:20;not null;default:pending"`
	OpenedAt        *time.Time `gorm:"column:opened_at"`
	ClosedAt        *time.Time `gorm:"column:closed_at"`
	DurationMinutes int        `gorm:"column:duration_minutes"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (ActivityEntity) TableName() string { return "activities" }

// ParticipantEntity is a joined attendee (GORM).
type ParticipantEntity struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	SessionID      string    `gorm:"type:uuid;not null;index"`
	DisplayName    string    `gorm:"size:120"`
	IsAnonymous    bool      `gorm:"not null;default:false"`
	DimensionsJSON string    `gorm:"column:dimensions;type:jsonb"`
	JoinedAt       time.Time `gorm:"column:joined_at;not null"`
}

func (ParticipantEntity) TableName() string { return "participants" }

// ResponseEntity is one immutable submission (GORM).
type ResponseEntity struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	SessionID      string    `gorm:"type:uuid;not null;index"`
	ActivityID     string    `gorm:"type:uuid;not null;index"`
	ParticipantID  string    `gorm:"type:uuid;not null;index"`
	Payload        string    `gorm:"type:text;not null"`
	DimensionsJSON string    `gorm:"column:dimensions;type:jsonb"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (ResponseEntity) TableName() string { return "responses" }

// ContributionCounterEntity tallies accepted responses per participant per session (GORM).
type ContributionCounterEntity struct {
	ParticipantID      string    `gorm:"type:uuid;primaryKey"`
	SessionID          string    `gorm:"type:uuid;primaryKey"`
	TotalContributions int64     `gorm:"not null;default:0"`
	LastContributionAt time.Time `gorm:"column:last_contribution_at;not null"`
}

func (ContributionCounterEntity) TableName() string { return "contribution_counters" }
