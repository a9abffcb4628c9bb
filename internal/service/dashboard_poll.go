package service

import (
	"sort"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// GetPollDashboard tallies selected option ids per configured option.
// Malformed payloads and unknown option ids contribute nothing.
func (s *DashboardService) GetPollDashboard(sessionID, activityID string, filters map[string]string) (*model.PollDashboard, error) {
	act, responses, base, err := s.load(sessionID, activityID, model.ActivityTypePoll, filters)
	if err != nil {
		return nil, err
	}
	cfg := model.ParsePollConfig(act.Config)

	counts := make(map[string]int, len(cfg.Options))
	for _, opt := range cfg.Options {
		counts[opt.ID] = 0
	}
	for _, r := range responses {
		for _, id := range model.ParsePollSelections(r.Payload) {
			if _, known := counts[id]; known {
				counts[id]++
			}
		}
	}

	results := make([]model.PollOptionResult, 0, len(cfg.Options))
	for _, opt := range cfg.Options {
		results = append(results, model.PollOptionResult{
			ID:         opt.ID,
			Label:      opt.Label,
			Count:      counts[opt.ID],
			Percentage: percentage(counts[opt.ID], base.TotalResponses),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Label < results[j].Label
	})

	return &model.PollDashboard{DashboardBase: base, Options: results}, nil
}
