package service

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// GetWordCloudDashboard tokenizes response texts into a word frequency view.
func (s *DashboardService) GetWordCloudDashboard(sessionID, activityID string, filters map[string]string) (*model.WordCloudDashboard, error) {
	act, responses, base, err := s.load(sessionID, activityID, model.ActivityTypeWordCloud, filters)
	if err != nil {
		return nil, err
	}
	cfg := model.ParseWordCloudConfig(act.Config)

	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		if !cfg.CaseSensitive {
			w = strings.ToLower(w)
		}
		stop[w] = struct{}{}
	}

	counts := make(map[string]int)
	totalWords := 0
	var lastAt *time.Time
	for _, r := range responses {
		if lastAt == nil || r.CreatedAt.After(*lastAt) {
			at := r.CreatedAt
			lastAt = &at
		}
		for _, raw := range strings.Fields(model.ParseWordCloudText(r.Payload)) {
			word := cleanToken(raw)
			if !cfg.CaseSensitive {
				word = strings.ToLower(word)
			}
			n := len([]rune(word))
			if n < cfg.MinWordLength || n > cfg.MaxWordLength {
				continue
			}
			if _, skip := stop[word]; skip {
				continue
			}
			counts[word]++
			totalWords++
		}
	}

	words := make([]model.WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	return &model.WordCloudDashboard{
		DashboardBase:  base,
		Words:          words,
		TotalWords:     totalWords,
		UniqueWords:    len(counts),
		LastResponseAt: lastAt,
	}, nil
}

// cleanToken strips everything except letters, digits, hyphen and apostrophe.
func cleanToken(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
