// Package push is the notification sink for fired reminders: a
// Bark-compatible HTTP push, fire-and-forget, no delivery guarantee.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Notification is one outgoing push. DedupeTag lets the receiving device
// collapse repeats for the same source (the reminder id).
type Notification struct {
	Title     string
	Body      string
	DedupeTag string
}

// Service sends notifications via a Bark-style push API. A Service with an
// empty key is a no-op sink, so callers never branch on configuration.
type Service struct {
	key        string
	serverURL  string
	httpClient *http.Client
}

// New creates a push service. key may be empty to disable pushing.
func New(key, serverURL string) *Service {
	return &Service{
		key:        strings.TrimSpace(key),
		serverURL:  strings.TrimSpace(serverURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type pushPayload struct {
	DeviceKey string `json:"device_key"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Group     string `json:"group,omitempty"`
}

// Push sends one notification. Unconfigured services succeed silently.
func (s *Service) Push(ctx context.Context, n Notification) error {
	if s.key == "" {
		return nil
	}
	serverURL := s.serverURL
	if serverURL == "" {
		serverURL = "https://day.app"
	}

	payload := pushPayload{
		DeviceKey: s.key,
		Title:     n.Title,
		Body:      n.Body,
		Group:     n.DedupeTag,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/push", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
