package model

import (
	"encoding/json"
	"strings"
)

// Response payloads arrive as untrusted JSON. Each parser below accepts the
// known shapes for its activity type and reports ok=false (or an empty value)
// for anything else, so one corrupt submission never fails a whole dashboard.

// ParsePollSelections extracts selected option ids from a poll payload.
// Accepted shapes: a bare array of ids, {"selected_option_ids":[...]},
// legacy {"selectedOptions":[...]}, or a single id string.
func ParsePollSelections(payload string) []string {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err == nil {
		return dropBlank(ids)
	}
	var obj struct {
		SelectedOptionIDs      []string `json:"selected_option_ids"`
		SelectedOptionIDsAlt   []string `json:"selectedOptionIds"`
		LegacySelectedOptions  []string `json:"selectedOptions"`
		LegacySelectedOptions2 []string `json:"selected_options"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		for _, got := range [][]string{obj.SelectedOptionIDs, obj.SelectedOptionIDsAlt, obj.LegacySelectedOptions, obj.LegacySelectedOptions2} {
			if len(got) > 0 {
				return dropBlank(got)
			}
		}
	}
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{single}
	}
	return nil
}

func dropBlank(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseWordCloudText extracts the free text of a word-cloud payload.
// Accepted shapes: {"text":"..."}, a bare JSON string, or the raw payload
// itself when it is not JSON at all.
func ParseWordCloudText(payload string) string {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return ""
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil && strings.TrimSpace(obj.Text) != "" {
		return obj.Text
	}
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return single
	}
	if json.Valid([]byte(raw)) {
		// Valid JSON of some other shape; contributes nothing.
		return ""
	}
	return raw
}

// ParseRating extracts an integer rating and optional comment.
// Ratings <= 0 or absent report ok=false.
func ParseRating(payload string) (rating int, comment string, ok bool) {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return 0, "", false
	}
	var obj struct {
		Rating  json.Number `json:"rating"`
		Comment string      `json:"comment"`
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return 0, "", false
	}
	n, err := obj.Rating.Int64()
	if err != nil {
		if f, ferr := obj.Rating.Float64(); ferr == nil {
			n = int64(f)
		} else {
			return 0, "", false
		}
	}
	if n <= 0 {
		return 0, "", false
	}
	return int(n), obj.Comment, true
}

// ParseFeedback extracts the content of a general-feedback payload.
// Blank content (including the legacy "feedback" key) reports ok=false.
func ParseFeedback(payload string) (content, category string, isAnonymous bool, ok bool) {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return "", "", false, false
	}
	var obj struct {
		Content     string `json:"content"`
		Feedback    string `json:"feedback"`
		Category    string `json:"category"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", "", false, false
	}
	content = strings.TrimSpace(obj.Content)
	if content == "" {
		content = strings.TrimSpace(obj.Feedback)
	}
	if content == "" {
		return "", "", false, false
	}
	return content, obj.Category, obj.IsAnonymous, true
}
