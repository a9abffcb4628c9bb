package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

func newDashboardService(st *stubStore) *DashboardService {
	return NewDashboardService(st, nopLogger())
}

var respSeq int

// seedResponse inserts a response with a unique id and a strictly increasing
// timestamp so recency ordering is deterministic.
func seedResponse(st *stubStore, activityID, participantID, payload string, dims map[string]string) *model.Response {
	respSeq++
	r := &model.Response{
		ID:            fmt.Sprintf("r%d", respSeq),
		SessionID:     "s1",
		ActivityID:    activityID,
		ParticipantID: participantID,
		Payload:       payload,
		Dimensions:    dims,
		CreatedAt:     testNow.Add(time.Duration(respSeq) * time.Second),
	}
	st.responses = append(st.responses, r)
	return r
}

const pollConfig = `{"options":[{"id":"a","label":"Apples"},{"id":"b","label":"Bananas"}]}`

func TestPollDashboard(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypePoll, model.ActivityStatusOpen, pollConfig)
	seedParticipant(st, "p1", "s1", nil)
	seedParticipant(st, "p2", "s1", nil)
	seedParticipant(st, "p3", "s1", nil)
	seedResponse(st, "a1", "p1", `["a"]`, nil)
	seedResponse(st, "a1", "p2", `{"selected_option_ids":["a"]}`, nil)
	seedResponse(st, "a1", "p3", `["b","ghost"]`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetPollDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetPollDashboard: %v", err)
	}
	if dash.TotalResponses != 3 || dash.TotalParticipants != 3 || dash.RespondedParticipants != 3 {
		t.Errorf("base = %+v", dash.DashboardBase)
	}
	if len(dash.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(dash.Options))
	}
	if dash.Options[0].ID != "a" || dash.Options[0].Count != 2 || dash.Options[0].Percentage != 66.67 {
		t.Errorf("first option = %+v, want a/2/66.67", dash.Options[0])
	}
	if dash.Options[1].ID != "b" || dash.Options[1].Count != 1 || dash.Options[1].Percentage != 33.33 {
		t.Errorf("second option = %+v, want b/1/33.33", dash.Options[1])
	}
}

func TestPollDashboardIgnoresMalformedPayloads(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypePoll, model.ActivityStatusOpen, pollConfig)
	seedParticipant(st, "p1", "s1", nil)
	seedResponse(st, "a1", "p1", `not json at all`, nil)
	seedResponse(st, "a1", "p1", `["a"]`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetPollDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetPollDashboard: %v", err)
	}
	// The malformed response still counts toward totals but tallies nothing.
	if dash.TotalResponses != 2 {
		t.Errorf("totalResponses = %d, want 2", dash.TotalResponses)
	}
	if dash.Options[0].ID != "a" || dash.Options[0].Count != 1 {
		t.Errorf("first option = %+v, want a/1", dash.Options[0])
	}
}

func TestWordCloudDashboard(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeWordCloud, model.ActivityStatusOpen, "")
	seedParticipant(st, "p1", "s1", nil)
	seedParticipant(st, "p2", "s1", nil)
	seedResponse(st, "a1", "p1", `{"text":"Great session"}`, nil)
	last := seedResponse(st, "a1", "p2", `{"text":"great results"}`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetWordCloudDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetWordCloudDashboard: %v", err)
	}
	if dash.TotalWords != 4 || dash.UniqueWords != 3 {
		t.Errorf("totals = %d/%d words, want 4/3", dash.TotalWords, dash.UniqueWords)
	}
	want := []model.WordCount{{Word: "great", Count: 2}, {Word: "results", Count: 1}, {Word: "session", Count: 1}}
	if len(dash.Words) != len(want) {
		t.Fatalf("got %d words, want %d", len(dash.Words), len(want))
	}
	for i, w := range want {
		if dash.Words[i] != w {
			t.Errorf("words[%d] = %+v, want %+v", i, dash.Words[i], w)
		}
	}
	if dash.LastResponseAt == nil || !dash.LastResponseAt.Equal(last.CreatedAt) {
		t.Errorf("lastResponseAt = %v, want %v", dash.LastResponseAt, last.CreatedAt)
	}
}

func TestWordCloudDashboardConfig(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	cfg := `{"min_word_length":4,"stop_words":["sprint"]}`
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeWordCloud, model.ActivityStatusOpen, cfg)
	seedParticipant(st, "p1", "s1", nil)
	seedResponse(st, "a1", "p1", `{"text":"our Sprint went well"}`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetWordCloudDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetWordCloudDashboard: %v", err)
	}
	// "our" is too short, "sprint" is stopped (case-insensitively), leaving
	// "went" and "well".
	if dash.TotalWords != 2 || dash.UniqueWords != 2 {
		t.Errorf("totals = %d/%d, want 2/2", dash.TotalWords, dash.UniqueWords)
	}
}

func TestRatingDashboard(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeRating, model.ActivityStatusOpen, "")
	seedParticipant(st, "p1", "s1", nil)
	seedResponse(st, "a1", "p1", `{"rating":5}`, nil)
	seedResponse(st, "a1", "p1", `{"rating":3,"comment":"could be tighter"}`, nil)
	seedResponse(st, "a1", "p1", `{"rating":4}`, nil)
	seedResponse(st, "a1", "p1", `{"rating":5,"comment":"loved it"}`, nil)
	seedResponse(st, "a1", "p1", `{"mood":"confused"}`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetRatingDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetRatingDashboard: %v", err)
	}
	if dash.Count != 4 {
		t.Fatalf("count = %d, want 4 (unparseable skipped)", dash.Count)
	}
	if dash.Average != 4.25 || dash.Median != 4.5 || dash.Min != 3 || dash.Max != 5 {
		t.Errorf("stats = avg %v median %v min %d max %d, want 4.25/4.5/3/5",
			dash.Average, dash.Median, dash.Min, dash.Max)
	}
	want := []model.RatingBucket{
		{Rating: 3, Count: 1, Percentage: 25},
		{Rating: 4, Count: 1, Percentage: 25},
		{Rating: 5, Count: 2, Percentage: 50},
	}
	if len(dash.Distribution) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(dash.Distribution), len(want))
	}
	for i, b := range want {
		if dash.Distribution[i] != b {
			t.Errorf("distribution[%d] = %+v, want %+v", i, dash.Distribution[i], b)
		}
	}
	if len(dash.Comments) != 2 || dash.Comments[0].Comment != "loved it" {
		t.Errorf("comments = %+v, want most recent first", dash.Comments)
	}
}

func TestRatingDashboardScaleBounds(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeRating, model.ActivityStatusOpen,
		`{"min_rating":1,"max_rating":5}`)
	seedParticipant(st, "p1", "s1", nil)
	seedResponse(st, "a1", "p1", `{"rating":4}`, nil)
	seedResponse(st, "a1", "p1", `{"rating":9}`, nil)
	seedResponse(st, "a1", "p1", `{"rating":0,"comment":"out of scale"}`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetRatingDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetRatingDashboard: %v", err)
	}
	if dash.Count != 1 {
		t.Fatalf("count = %d, want 1 (out-of-scale ratings skipped)", dash.Count)
	}
	if dash.Min != 4 || dash.Max != 4 || dash.Average != 4 {
		t.Errorf("stats = min %d max %d avg %v, want 4/4/4", dash.Min, dash.Max, dash.Average)
	}
	if len(dash.Comments) != 0 {
		t.Errorf("comments = %v, want none from skipped ratings", dash.Comments)
	}
}

func TestRatingDashboardEmpty(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeRating, model.ActivityStatusOpen, "")
	svc := newDashboardService(st)

	dash, err := svc.GetRatingDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetRatingDashboard: %v", err)
	}
	if dash.Count != 0 || dash.Average != 0 || len(dash.Distribution) != 0 {
		t.Errorf("empty dashboard = %+v", dash)
	}
}

func TestFeedbackDashboard(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypeGeneralFeedback, model.ActivityStatusOpen, "")
	seedParticipant(st, "p1", "s1", nil)
	seedResponse(st, "a1", "p1", `{"content":"pacing felt rushed"}`, nil)
	seedResponse(st, "a1", "p1", `{"feedback":"rushed agenda overall","category":"process","is_anonymous":true}`, nil)
	svc := newDashboardService(st)

	dash, err := svc.GetGeneralFeedbackDashboard("s1", "a1", nil)
	if err != nil {
		t.Fatalf("GetGeneralFeedbackDashboard: %v", err)
	}
	if len(dash.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(dash.Items))
	}
	// Most recent first; the legacy "feedback" key is honored.
	if dash.Items[0].Content != "rushed agenda overall" || dash.Items[0].Category != "process" || !dash.Items[0].IsAnonymous {
		t.Errorf("items[0] = %+v", dash.Items[0])
	}
	if dash.Items[0].WordCount != 3 || dash.Items[1].WordCount != 3 {
		t.Errorf("word counts = %d/%d, want 3/3", dash.Items[0].WordCount, dash.Items[1].WordCount)
	}
	if dash.AverageWordCount != 3 {
		t.Errorf("averageWordCount = %v, want 3", dash.AverageWordCount)
	}
	if len(dash.TopKeywords) == 0 || dash.TopKeywords[0].Keyword != "rushed" || dash.TopKeywords[0].Count != 2 {
		t.Errorf("topKeywords = %+v, want rushed/2 first", dash.TopKeywords)
	}
}

func TestDashboardDimensionFilters(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypePoll, model.ActivityStatusOpen, pollConfig)
	seedParticipant(st, "p1", "s1", map[string]string{"department": "Engineering"})
	seedParticipant(st, "p2", "s1", map[string]string{"department": "Sales"})
	seedResponse(st, "a1", "p1", `["a"]`, map[string]string{"department": "Engineering"})
	seedResponse(st, "a1", "p2", `["b"]`, map[string]string{"department": "Sales"})
	svc := newDashboardService(st)

	dash, err := svc.GetPollDashboard("s1", "a1", map[string]string{"department": "engineering"})
	if err != nil {
		t.Fatalf("GetPollDashboard: %v", err)
	}
	if dash.TotalResponses != 1 || dash.RespondedParticipants != 1 {
		t.Errorf("filtered base = %+v, want 1 response from 1 participant", dash.DashboardBase)
	}
	if dash.Options[0].ID != "a" || dash.Options[0].Count != 1 || dash.Options[0].Percentage != 100 {
		t.Errorf("filtered option = %+v, want a/1/100", dash.Options[0])
	}

	// Blank filter values are ignored.
	dash, err = svc.GetPollDashboard("s1", "a1", map[string]string{"department": "  "})
	if err != nil {
		t.Fatalf("GetPollDashboard: %v", err)
	}
	if dash.TotalResponses != 2 {
		t.Errorf("blank filter totalResponses = %d, want 2", dash.TotalResponses)
	}
}

func TestDashboardErrors(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedActivity(st, "a1", "s1", 1, model.ActivityTypePoll, model.ActivityStatusOpen, pollConfig)
	svc := newDashboardService(st)

	if _, err := svc.GetPollDashboard("", "a1", nil); !errs.IsValidation(err) {
		t.Errorf("blank session err = %v, want validation", err)
	}
	if _, err := svc.GetPollDashboard("s1", "ghost", nil); !errs.IsNotFound(err) {
		t.Errorf("missing activity err = %v, want not found", err)
	}
	if _, err := svc.GetPollDashboard("other", "a1", nil); !errs.IsNotFound(err) {
		t.Errorf("foreign activity err = %v, want not found", err)
	}
	if _, err := svc.GetRatingDashboard("s1", "a1", nil); !errs.IsValidation(err) {
		t.Errorf("type mismatch err = %v, want validation", err)
	}
}
