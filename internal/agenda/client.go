// Package agenda is the HTTP client for the external agenda-drafts service.
// The core only depends on the service.AgendaDrafter interface; this client
// is wired in when AGENDA_SERVICE_URL is configured.
package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

// Client calls the agenda-drafts service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates an agenda drafts client.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type suggestRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}

type suggestResponse struct {
	Drafts []model.ActivityDraft `json:"drafts"`
}

// Suggest asks the drafts service for activity suggestions on a topic.
func (c *Client) Suggest(ctx context.Context, topic string, count int) ([]model.ActivityDraft, error) {
	body, err := json.Marshal(suggestRequest{Topic: topic, Count: count})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/agenda/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("agenda service request failed", zap.Error(err))
		return nil, fmt.Errorf("agenda service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("agenda service returned error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("agenda service: status %d", resp.StatusCode)
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("agenda service: decode: %w", err)
	}
	return out.Drafts, nil
}
