package service

import (
	"math"
	"sort"
	"strings"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

const topKeywordCount = 10

// keywordStopWords are skipped during keyword extraction.
var keywordStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"was": {}, "were": {}, "are": {}, "but": {}, "not": {}, "you": {},
	"have": {}, "has": {}, "had": {}, "from": {}, "they": {}, "will": {},
	"would": {}, "what": {}, "when": {}, "where": {}, "your": {}, "our": {},
	"out": {}, "all": {}, "can": {}, "too": {}, "very": {}, "just": {},
	"about": {}, "there": {}, "their": {}, "been": {}, "being": {},
	"more": {}, "most": {}, "some": {}, "such": {}, "only": {}, "over": {},
	"than": {}, "then": {}, "them": {}, "these": {}, "those": {},
	"into": {}, "also": {}, "its": {}, "it's": {},
}

// GetGeneralFeedbackDashboard lists feedback entries most-recent-first with
// word counts and the top extracted keywords.
func (s *DashboardService) GetGeneralFeedbackDashboard(sessionID, activityID string, filters map[string]string) (*model.FeedbackDashboard, error) {
	_, responses, base, err := s.load(sessionID, activityID, model.ActivityTypeGeneralFeedback, filters)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedbackItem, 0, len(responses))
	keywordCounts := make(map[string]int)
	totalWords := 0
	for _, r := range responses {
		content, category, anon, ok := model.ParseFeedback(r.Payload)
		if !ok {
			continue
		}
		words := strings.Fields(content)
		items = append(items, model.FeedbackItem{
			Content:     content,
			Category:    category,
			IsAnonymous: anon,
			WordCount:   len(words),
			CreatedAt:   r.CreatedAt,
		})
		totalWords += len(words)
		for _, raw := range words {
			kw := strings.ToLower(cleanToken(raw))
			if len([]rune(kw)) <= 2 {
				continue
			}
			if _, skip := keywordStopWords[kw]; skip {
				continue
			}
			keywordCounts[kw]++
		}
	}
	// Most recent first.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	keywords := make([]model.KeywordCount, 0, len(keywordCounts))
	for kw, c := range keywordCounts {
		keywords = append(keywords, model.KeywordCount{Keyword: kw, Count: c})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})
	if len(keywords) > topKeywordCount {
		keywords = keywords[:topKeywordCount]
	}

	avg := 0.0
	if len(items) > 0 {
		avg = math.Round(float64(totalWords)/float64(len(items))*100) / 100
	}
	return &model.FeedbackDashboard{
		DashboardBase:    base,
		Items:            items,
		AverageWordCount: avg,
		TopKeywords:      keywords,
	}, nil
}
