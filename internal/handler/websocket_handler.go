package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
)

// EventWSHandler handles WebSocket subscriptions to session events.
// Path: /ws/sessions/:code/:subscriber_id
type EventWSHandler struct {
	hub    *service.EventHub
	sess   *service.SessionService
	logger *zap.Logger
}

// NewEventWSHandler creates the WebSocket events handler.
func NewEventWSHandler(hub *service.EventHub, sess *service.SessionService, logger *zap.Logger) *EventWSHandler {
	return &EventWSHandler{hub: hub, sess: sess, logger: logger}
}

// ServeWS upgrades the request and streams session events until the
// subscriber disconnects.
func (h *EventWSHandler) ServeWS(c *gin.Context) {
	code := c.Param("code")
	subscriberID := c.Param("subscriber_id")
	if code == "" || subscriberID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and subscriber_id required"})
		return
	}

	sess, err := h.sess.GetByCode(code)
	if err != nil {
		respondError(c, err)
		return
	}
	if sess.Status == model.SessionStatusEnded {
		c.JSON(http.StatusGone, gin.H{"error": "session already ended"})
		return
	}

	conn, err := h.hub.Upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub, cleanup := h.hub.Register(sess.Code, subscriberID, conn)
	defer cleanup()

	go h.writePump(sub)
	h.readPump(sub)
}

// readPump drains control frames; subscribers are listeners only.
func (h *EventWSHandler) readPump(sub *service.Subscriber) {
	defer func() {
		_ = sub.Conn.Close()
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *EventWSHandler) writePump(sub *service.Subscriber) {
	defer func() {
		_ = sub.Conn.Close()
	}()
	for data := range sub.Send {
		if err := sub.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
