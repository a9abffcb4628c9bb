package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// SessionHandler handles the REST API for sessions.
type SessionHandler struct {
	svc *service.SessionService
	ws  *service.WSConfig
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(svc *service.SessionService, wsBaseURL string) *SessionHandler {
	return &SessionHandler{svc: svc, ws: &service.WSConfig{BaseURL: wsBaseURL}}
}

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":      sess,
		"subscribe_ws": h.ws.SubscribeURL(sess.Code, "{subscriber_id}"),
	})
}

// GetSession handles GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GetSessionByCode handles GET /sessions/by-code/:code.
func (h *SessionHandler) GetSessionByCode(c *gin.Context) {
	sess, err := h.svc.GetByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateSession handles PATCH /sessions/:id.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var req model.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetStatus handles PUT /sessions/:id/status.
func (h *SessionHandler) SetStatus(c *gin.Context) {
	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetCurrentActivity handles PUT /sessions/:id/current-activity.
func (h *SessionHandler) SetCurrentActivity(c *gin.Context) {
	var req model.SetCurrentActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.SetCurrentActivity(c.Param("id"), req.ActivityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateSettings handles PUT /sessions/:id/settings.
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var settings model.SessionSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.UpdateSettings(c.Param("id"), settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateJoinForm handles PUT /sessions/:id/join-form.
func (h *SessionHandler) UpdateJoinForm(c *gin.Context) {
	var schema model.JoinFormSchema
	if err := c.ShouldBindJSON(&schema); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.UpdateJoinForm(c.Param("id"), schema)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// PublishInsight handles POST /sessions/:id/insights.
func (h *SessionHandler) PublishInsight(c *gin.Context) {
	var req model.PublishInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	if err := h.svc.PublishInsight(c.Param("id"), req.ActivityID, req.Insight); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
