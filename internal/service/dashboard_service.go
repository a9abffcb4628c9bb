package service

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// DashboardStore abstracts the reads the aggregation engine needs.
// Dashboards are computed from the response store directly, never from the
// contribution counters.
type DashboardStore interface {
	GetActivity(id string) (*model.Activity, error)
	ListResponsesByActivity(activityID string) ([]*model.Response, error)
	CountParticipants(sessionID string) (int64, error)
}

// DashboardService aggregates raw responses into per-activity-type views.
// Filters map join-form field ids to required values; a response matches iff
// its dimension snapshot equals every non-blank filter value
// (case-insensitive).
type DashboardService struct {
	store DashboardStore
	log   *zap.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store DashboardStore, log *zap.Logger) *DashboardService {
	return &DashboardService{store: store, log: log}
}

// load fetches and type-checks the activity, then returns the filtered
// responses plus the counts common to all dashboards.
func (s *DashboardService) load(sessionID, activityID string, want model.ActivityType, filters map[string]string) (*model.Activity, []*model.Response, model.DashboardBase, error) {
	var base model.DashboardBase
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(activityID) == "" {
		return nil, nil, base, errs.Validationf("session and activity ids are required")
	}
	act, err := s.store.GetActivity(activityID)
	if err != nil {
		return nil, nil, base, err
	}
	if act == nil || act.SessionID != sessionID {
		return nil, nil, base, errs.NotFoundf("activity %s not found in session %s", activityID, sessionID)
	}
	if act.Type != want {
		return nil, nil, base, errs.Validationf("activity %s is %s, expected %s", activityID, act.Type, want)
	}

	all, err := s.store.ListResponsesByActivity(activityID)
	if err != nil {
		return nil, nil, base, err
	}
	responses := filterResponses(all, filters)

	totalParticipants, err := s.store.CountParticipants(sessionID)
	if err != nil {
		return nil, nil, base, err
	}
	respondents := make(map[string]struct{})
	for _, r := range responses {
		respondents[r.ParticipantID] = struct{}{}
	}

	base = model.DashboardBase{
		SessionID:             sessionID,
		ActivityID:            activityID,
		TotalResponses:        len(responses),
		TotalParticipants:     totalParticipants,
		RespondedParticipants: len(respondents),
	}
	return act, responses, base, nil
}

// filterResponses keeps responses whose dimension snapshot matches every
// non-blank filter entry, compared case-insensitively.
func filterResponses(responses []*model.Response, filters map[string]string) []*model.Response {
	active := make(map[string]string)
	for k, v := range filters {
		if strings.TrimSpace(v) != "" {
			active[k] = v
		}
	}
	if len(active) == 0 {
		return responses
	}
	out := make([]*model.Response, 0, len(responses))
	for _, r := range responses {
		match := true
		for field, want := range active {
			if !strings.EqualFold(r.Dimensions[field], want) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

// percentage returns count/total*100 rounded to two decimals, 0 when total is 0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}
