package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// ResponseHandler handles the REST API for response submission and listing.
type ResponseHandler struct {
	svc *service.ResponseService
}

// NewResponseHandler creates a response handler.
func NewResponseHandler(svc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{svc: svc}
}

// Submit handles POST /sessions/:id/activities/:activity_id/responses.
func (h *ResponseHandler) Submit(c *gin.Context) {
	var req model.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	resp, err := h.svc.Submit(c.Param("id"), c.Param("activity_id"), req.ParticipantID, req.Payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetByActivity handles GET /sessions/:id/activities/:activity_id/responses.
func (h *ResponseHandler) GetByActivity(c *gin.Context) {
	responses, err := h.svc.GetByActivity(c.Param("id"), c.Param("activity_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity_id": c.Param("activity_id"), "responses": responses})
}

// GetByParticipant handles GET /sessions/:id/participants/:participant_id/responses.
func (h *ResponseHandler) GetByParticipant(c *gin.Context) {
	responses, err := h.svc.GetByParticipant(c.Param("id"), c.Param("participant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant_id": c.Param("participant_id"), "responses": responses})
}
