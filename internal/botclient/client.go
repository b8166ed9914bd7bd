// Package botclient is a typed HTTP client for the voice bot's control API.
// The backend itself never calls this API; only the integration test client
// does, to drive a bot end-to-end against this service.
package botclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the bot control API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the bot control API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			// Joining a Teams meeting can take a while.
			Timeout: 30 * time.Second,
		},
	}
}

// JoinResult is the bot's response to a join request.
type JoinResult struct {
	CallID     string `json:"callId"`
	ScenarioID string `json:"scenarioId"`
	Status     string `json:"status"`
}

// ActiveCall describes one call the bot is currently in.
type ActiveCall struct {
	CallID   string `json:"callId"`
	Status   string `json:"status"`
	JoinedAt string `json:"joinedAt"`
}

// Health reports whether the bot control API is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/meeting/health", nil, nil)
}

// Join asks the bot to join the meeting at joinURL.
func (c *Client) Join(ctx context.Context, joinURL string) (JoinResult, error) {
	var result JoinResult
	err := c.do(ctx, http.MethodPost, "/api/meeting/join", map[string]string{"joinUrl": joinURL}, &result)
	return result, err
}

// ActiveCalls lists the calls the bot is currently in.
func (c *Client) ActiveCalls(ctx context.Context) ([]ActiveCall, error) {
	var calls []ActiveCall
	err := c.do(ctx, http.MethodGet, "/api/meeting/active", nil, &calls)
	return calls, err
}

// Leave asks the bot to leave the given call.
func (c *Client) Leave(ctx context.Context, callID string) error {
	return c.do(ctx, http.MethodPost, "/api/meeting/leave", map[string]string{"callId": callID}, nil)
}

// AudioFiles lists the audio files the bot has captured.
func (c *Client) AudioFiles(ctx context.Context) ([]string, error) {
	var files []string
	err := c.do(ctx, http.MethodGet, "/api/audio/files", nil, &files)
	return files, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
