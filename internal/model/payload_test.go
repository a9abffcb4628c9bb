package model

import (
	"reflect"
	"testing"
)

func TestParsePollSelections(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []string
	}{
		{"bare array", `["a","b"]`, []string{"a", "b"}},
		{"snake key", `{"selected_option_ids":["a"]}`, []string{"a"}},
		{"camel key", `{"selectedOptionIds":["b"]}`, []string{"b"}},
		{"legacy key", `{"selectedOptions":["a","c"]}`, []string{"a", "c"}},
		{"legacy snake key", `{"selected_options":["c"]}`, []string{"c"}},
		{"single string", `"a"`, []string{"a"}},
		{"blank entries dropped", `["a","  ",""]`, []string{"a"}},
		{"empty payload", ``, nil},
		{"not json", `pick a`, nil},
		{"wrong shape", `{"rating":4}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePollSelections(tc.payload)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParsePollSelections(%q) = %v, want %v", tc.payload, got, tc.want)
			}
		})
	}
}

func TestParseWordCloudText(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{"text object", `{"text":"great session"}`, "great session"},
		{"bare string", `"great session"`, "great session"},
		{"raw non-json", `great session`, "great session"},
		{"other json shape", `{"rating":4}`, ""},
		{"empty", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseWordCloudText(tc.payload); got != tc.want {
				t.Errorf("ParseWordCloudText(%q) = %q, want %q", tc.payload, got, tc.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	cases := []struct {
		name        string
		payload     string
		wantRating  int
		wantComment string
		wantOK      bool
	}{
		{"plain", `{"rating":4}`, 4, "", true},
		{"with comment", `{"rating":5,"comment":"great"}`, 5, "great", true},
		{"float truncated", `{"rating":4.6}`, 4, "", true},
		{"zero", `{"rating":0}`, 0, "", false},
		{"negative", `{"rating":-2}`, 0, "", false},
		{"absent", `{"comment":"hi"}`, 0, "", false},
		{"not json", `four`, 0, "", false},
		{"empty", ``, 0, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rating, comment, ok := ParseRating(tc.payload)
			if rating != tc.wantRating || comment != tc.wantComment || ok != tc.wantOK {
				t.Errorf("ParseRating(%q) = %d, %q, %v; want %d, %q, %v",
					tc.payload, rating, comment, ok, tc.wantRating, tc.wantComment, tc.wantOK)
			}
		})
	}
}

func TestParseFeedback(t *testing.T) {
	content, category, anon, ok := ParseFeedback(`{"content":"too fast","category":"pacing","is_anonymous":true}`)
	if !ok || content != "too fast" || category != "pacing" || !anon {
		t.Errorf("ParseFeedback = %q, %q, %v, %v", content, category, anon, ok)
	}

	content, _, _, ok = ParseFeedback(`{"feedback":"legacy shape"}`)
	if !ok || content != "legacy shape" {
		t.Errorf("legacy key: content = %q ok = %v", content, ok)
	}

	for _, payload := range []string{``, `not json`, `{"content":"   "}`, `{"category":"misc"}`} {
		if _, _, _, ok := ParseFeedback(payload); ok {
			t.Errorf("ParseFeedback(%q) ok = true, want false", payload)
		}
	}
}

func TestParseWordCloudConfig(t *testing.T) {
	cfg := ParseWordCloudConfig("")
	if cfg.MinWordLength != 2 || cfg.MaxWordLength != 30 {
		t.Errorf("defaults = %d/%d, want 2/30", cfg.MinWordLength, cfg.MaxWordLength)
	}
	cfg = ParseWordCloudConfig(`{"min_word_length":4,"stop_words":["the"],"case_sensitive":true}`)
	if cfg.MinWordLength != 4 || cfg.MaxWordLength != 30 || !cfg.CaseSensitive || len(cfg.StopWords) != 1 {
		t.Errorf("parsed = %+v", cfg)
	}
	if cfg := ParseWordCloudConfig(`{broken`); cfg.MinWordLength != 2 || cfg.MaxWordLength != 30 {
		t.Errorf("malformed config = %+v, want defaults", cfg)
	}
}

func TestParseRatingConfig(t *testing.T) {
	cfg := ParseRatingConfig("")
	if cfg.MinRating != 1 || cfg.MaxRating != 5 {
		t.Errorf("defaults = %d/%d, want 1/5", cfg.MinRating, cfg.MaxRating)
	}
	cfg = ParseRatingConfig(`{"min_rating":0,"max_rating":10}`)
	if cfg.MinRating != 1 || cfg.MaxRating != 10 {
		t.Errorf("parsed = %d/%d, want 1/10", cfg.MinRating, cfg.MaxRating)
	}
}

func TestResponseLimit(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"snake", `{"max_responses_per_participant":3}`, 3},
		{"camel", `{"maxResponsesPerParticipant":2}`, 2},
		{"pascal", `{"MaxResponsesPerParticipant":1}`, 1},
		{"absent", `{"options":[]}`, 0},
		{"zero", `{"max_responses_per_participant":0}`, 0},
		{"negative", `{"max_responses_per_participant":-1}`, 0},
		{"malformed", `{broken`, 0},
		{"empty", ``, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResponseLimit(tc.raw); got != tc.want {
				t.Errorf("ResponseLimit(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}
