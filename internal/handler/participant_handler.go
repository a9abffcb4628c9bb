package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// ParticipantHandler handles the REST API for joining sessions.
type ParticipantHandler struct {
	svc *service.ParticipantService
}

// NewParticipantHandler creates a participant handler.
func NewParticipantHandler(svc *service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{svc: svc}
}

// Join handles POST /sessions/:id/participants.
func (h *ParticipantHandler) Join(c *gin.Context) {
	var req model.JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	p, err := h.svc.Join(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetBySession handles GET /sessions/:id/participants.
func (h *ParticipantHandler) GetBySession(c *gin.Context) {
	participants, err := h.svc.GetBySession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "participants": participants})
}
