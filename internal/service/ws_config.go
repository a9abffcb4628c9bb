package service

import "fmt"

// WSConfig holds the WebSocket URL base returned to joiners.
type WSConfig struct {
	BaseURL string
}

// SubscribeURL returns the event-subscription URL for a session code and
// subscriber (e.g. wss://host/ws/sessions/CODE/subscriberID).
func (c *WSConfig) SubscribeURL(sessionCode, subscriberID string) string {
	if c == nil || c.BaseURL == "" {
		return fmt.Sprintf("/ws/sessions/%s/%s", sessionCode, subscriberID)
	}
	base := c.BaseURL
	if base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return fmt.Sprintf("%s/ws/sessions/%s/%s", base, sessionCode, subscriberID)
}
