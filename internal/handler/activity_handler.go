package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// ActivityHandler handles the REST API for session agendas.
type ActivityHandler struct {
	svc *service.ActivityService
}

// NewActivityHandler creates an activity handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// AddActivity handles POST /sessions/:id/activities.
func (h *ActivityHandler) AddActivity(c *gin.Context) {
	var req model.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	act, err := h.svc.Add(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, act)
}

// GetAgenda handles GET /sessions/:id/activities.
func (h *ActivityHandler) GetAgenda(c *gin.Context) {
	agenda, err := h.svc.GetAgenda(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "activities": agenda})
}

// UpdateActivity handles PATCH /sessions/:id/activities/:activity_id.
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	var req model.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	act, err := h.svc.Update(c.Param("id"), c.Param("activity_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

// DeleteActivity handles DELETE /sessions/:id/activities/:activity_id.
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), c.Param("activity_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderActivities handles POST /sessions/:id/activities/reorder.
func (h *ActivityHandler) ReorderActivities(c *gin.Context) {
	var req model.ReorderActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	agenda, err := h.svc.Reorder(c.Param("id"), req.ActivityIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "activities": agenda})
}

// OpenActivity handles POST /sessions/:id/activities/:activity_id/open.
func (h *ActivityHandler) OpenActivity(c *gin.Context) {
	act, err := h.svc.Open(c.Param("id"), c.Param("activity_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

// ReopenActivity handles POST /sessions/:id/activities/:activity_id/reopen.
func (h *ActivityHandler) ReopenActivity(c *gin.Context) {
	act, err := h.svc.Reopen(c.Param("id"), c.Param("activity_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

// CloseActivity handles POST /sessions/:id/activities/:activity_id/close.
func (h *ActivityHandler) CloseActivity(c *gin.Context) {
	act, err := h.svc.Close(c.Param("id"), c.Param("activity_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

// SuggestAgenda handles POST /sessions/:id/agenda/suggestions.
func (h *ActivityHandler) SuggestAgenda(c *gin.Context) {
	var req model.SuggestAgendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	created, err := h.svc.SuggestAgenda(c.Request.Context(), c.Param("id"), req.Topic, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": c.Param("id"), "activities": created})
}
