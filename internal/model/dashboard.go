package model

import "time"

// DashboardBase carries the counts every dashboard reports.
type DashboardBase struct {
	SessionID             string `json:"session_id"`
	ActivityID            string `json:"activity_id"`
	TotalResponses        int    `json:"total_responses"`
	TotalParticipants     int64  `json:"total_participants"`
	RespondedParticipants int    `json:"responded_participants"`
}

// PollOptionResult is one tallied poll option.
type PollOptionResult struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PollDashboard is the aggregated view of a poll activity.
type PollDashboard struct {
	DashboardBase
	Options []PollOptionResult `json:"options"`
}

// WordCount is one word-cloud entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCloudDashboard is the aggregated view of a word-cloud activity.
type WordCloudDashboard struct {
	DashboardBase
	Words          []WordCount `json:"words"`
	TotalWords     int         `json:"total_words"`
	UniqueWords    int         `json:"unique_words"`
	LastResponseAt *time.Time  `json:"last_response_at,omitempty"`
}

// RatingBucket is one entry of the rating distribution.
type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingComment is one free-text comment tagged with its rating.
type RatingComment struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingDashboard is the aggregated view of a rating activity.
type RatingDashboard struct {
	DashboardBase
	Count        int             `json:"count"`
	Average      float64         `json:"average"`
	Median       float64         `json:"median"`
	Min          int             `json:"min"`
	Max          int             `json:"max"`
	Distribution []RatingBucket  `json:"distribution"`
	Comments     []RatingComment `json:"comments"`
}

// FeedbackItem is one general-feedback entry.
type FeedbackItem struct {
	Content     string    `json:"content"`
	Category    string    `json:"category,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// KeywordCount is one extracted keyword with its frequency.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// FeedbackDashboard is the aggregated view of a general-feedback activity.
type FeedbackDashboard struct {
	DashboardBase
	Items            []FeedbackItem `json:"items"`
	AverageWordCount float64        `json:"average_word_count"`
	TopKeywords      []KeywordCount `json:"top_keywords"`
}
