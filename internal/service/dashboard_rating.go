package service

import (
	"math"
	"sort"
	"strings"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// GetRatingDashboard computes rating statistics, an exact-value distribution
// and a most-recent-first comment list.
func (s *DashboardService) GetRatingDashboard(sessionID, activityID string, filters map[string]string) (*model.RatingDashboard, error) {
	act, responses, base, err := s.load(sessionID, activityID, model.ActivityTypeRating, filters)
	if err != nil {
		return nil, err
	}
	cfg := model.ParseRatingConfig(act.Config)

	var ratings []int
	var comments []model.RatingComment
	for _, r := range responses {
		rating, comment, ok := model.ParseRating(r.Payload)
		// Ratings outside the configured scale contribute nothing.
		if !ok || rating < cfg.MinRating || rating > cfg.MaxRating {
			continue
		}
		ratings = append(ratings, rating)
		if strings.TrimSpace(comment) != "" {
			comments = append(comments, model.RatingComment{
				Rating:    rating,
				Comment:   comment,
				CreatedAt: r.CreatedAt,
			})
		}
	}
	// Most recent first.
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	dash := &model.RatingDashboard{
		DashboardBase: base,
		Count:         len(ratings),
		Distribution:  []model.RatingBucket{},
		Comments:      comments,
	}
	if len(ratings) == 0 {
		return dash, nil
	}

	sorted := append([]int(nil), ratings...)
	sort.Ints(sorted)
	sum := 0
	buckets := make(map[int]int)
	for _, v := range sorted {
		sum += v
		buckets[v]++
	}
	dash.Min = sorted[0]
	dash.Max = sorted[len(sorted)-1]
	dash.Average = math.Round(float64(sum)/float64(len(sorted))*100) / 100
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		dash.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		dash.Median = float64(sorted[mid])
	}

	values := make([]int, 0, len(buckets))
	for v := range buckets {
		values = append(values, v)
	}
	sort.Ints(values)
	for _, v := range values {
		dash.Distribution = append(dash.Distribution, model.RatingBucket{
			Rating:     v,
			Count:      buckets[v],
			Percentage: percentage(buckets[v], len(sorted)),
		})
	}
	return dash, nil
}
