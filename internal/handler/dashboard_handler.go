package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// filterPrefix marks query params treated as dimension filters,
// e.g. ?filter.department=sales.
const filterPrefix = "filter."

// DashboardHandler handles the REST API for aggregated dashboards.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func dimensionFilters(c *gin.Context) map[string]string {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, filterPrefix) && len(values) > 0 {
			filters[strings.TrimPrefix(key, filterPrefix)] = values[0]
		}
	}
	return filters
}

// Poll handles GET .../dashboards/poll.
func (h *DashboardHandler) Poll(c *gin.Context) {
	dash, err := h.svc.GetPollDashboard(c.Param("id"), c.Param("activity_id"), dimensionFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// WordCloud handles GET .../dashboards/wordcloud.
func (h *DashboardHandler) WordCloud(c *gin.Context) {
	dash, err := h.svc.GetWordCloudDashboard(c.Param("id"), c.Param("activity_id"), dimensionFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Rating handles GET .../dashboards/rating.
func (h *DashboardHandler) Rating(c *gin.Context) {
	dash, err := h.svc.GetRatingDashboard(c.Param("id"), c.Param("activity_id"), dimensionFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Feedback handles GET .../dashboards/feedback.
func (h *DashboardHandler) Feedback(c *gin.Context) {
	dash, err := h.svc.GetGeneralFeedbackDashboard(c.Param("id"), c.Param("activity_id"), dimensionFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
