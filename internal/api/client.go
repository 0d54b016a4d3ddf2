// Package api is the HTTP client for the voxchat gateway endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"voxchat/internal/models"
)

// Client talks to the two gateway endpoints. Every request carries the
// client's session ID so the server can mirror exchanges to other views.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionID:  uuid.NewString(),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// SessionID returns the session identifier generated for this client.
func (c *Client) SessionID() string { return c.sessionID }

// Chat sends one user utterance and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp models.ChatResponse
	if err := c.postJSON(ctx, "/api/v1/chat", models.ChatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Speak synthesizes text and returns the audio data URI.
func (c *Client) Speak(ctx context.Context, text string) (string, error) {
	var resp models.SpeakResponse
	if err := c.postJSON(ctx, "/api/v1/speak", models.SpeakRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.AudioData, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
