package service

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Subscriber represents one WebSocket connection listening to a session.
type Subscriber struct {
	SessionCode  string
	SubscriberID string
	Conn         *websocket.Conn
	Send         chan []byte
}

// EventHub fans session events out to WebSocket subscribers. It implements
// Notifier; a slow subscriber is skipped rather than blocking publishers.
type EventHub struct {
	mu         sync.RWMutex
	subs       map[string]map[*Subscriber]struct{} // session code -> set of subscribers
	upgrader   websocket.Upgrader
	maxMsgSize int64
	log        *zap.Logger
}

// NewEventHub creates an event hub.
func NewEventHub(readBuf, writeBuf int, maxMessageSize int64, log *zap.Logger) *EventHub {
	return &EventHub{
		subs:       make(map[string]map[*Subscriber]struct{}),
		maxMsgSize: maxMessageSize,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			// Allow all origins for dev; in prod set CheckOrigin.
		},
	}
}

// Register adds a subscriber to a session code and returns a cleanup function.
func (h *EventHub) Register(sessionCode, subscriberID string, conn *websocket.Conn) (*Subscriber, func()) {
	if h.maxMsgSize > 0 {
		conn.SetReadLimit(h.maxMsgSize)
	}
	sub := &Subscriber{
		SessionCode:  sessionCode,
		SubscriberID: subscriberID,
		Conn:         conn,
		Send:         make(chan []byte, 64),
	}
	h.mu.Lock()
	if h.subs[sessionCode] == nil {
		h.subs[sessionCode] = make(map[*Subscriber]struct{})
	}
	h.subs[sessionCode][sub] = struct{}{}
	h.mu.Unlock()

	h.log.Info("subscriber registered",
		zap.String("session_code", sessionCode),
		zap.String("subscriber_id", subscriberID))

	cleanup := func() {
		h.unregister(sessionCode, sub)
	}
	return sub, cleanup
}

func (h *EventHub) unregister(sessionCode string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[sessionCode]; ok {
		if _, present := m[sub]; !present {
			return
		}
		delete(m, sub)
		if len(m) == 0 {
			delete(h.subs, sessionCode)
		}
	} else {
		return
	}
	close(sub.Send)
	h.log.Info("subscriber unregistered",
		zap.String("session_code", sessionCode),
		zap.String("subscriber_id", sub.SubscriberID))
}

// Publish fans an event out to every subscriber of the session code.
func (h *EventHub) Publish(sessionCode string, ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("event marshal failed", zap.Error(err))
		return
	}
	// Send channels are closed only under the write lock, and these sends
	// never block, so fanning out under the read lock keeps every send
	// strictly before any close.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[sessionCode] {
		select {
		case s.Send <- raw:
		default:
			h.log.Warn("subscriber send buffer full",
				zap.String("session_code", sessionCode),
				zap.String("subscriber_id", s.SubscriberID))
		}
	}
}

// CloseSession broadcasts a session_ended event, then closes and removes all
// subscriber connections for the session code.
func (h *EventHub) CloseSession(sessionCode string) {
	h.mu.Lock()
	m, ok := h.subs[sessionCode]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sessionCode)
	h.mu.Unlock()

	raw, _ := json.Marshal(Event{Name: EventSessionEnded, SessionCode: sessionCode})
	for s := range m {
		_ = s.Conn.WriteMessage(websocket.TextMessage, raw)
		close(s.Send)
		_ = s.Conn.Close()
	}
	h.log.Info("session subscribers closed", zap.String("session_code", sessionCode))
}

// Upgrader returns the WebSocket upgrader for HTTP handlers.
func (h *EventHub) Upgrader() *websocket.Upgrader {
	return &h.upgrader
}

// SubscriberCount returns the subscriber count for a session code.
func (h *EventHub) SubscriberCount(sessionCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionCode])
}
