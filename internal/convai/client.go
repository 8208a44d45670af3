// Package convai is an HTTP client for the ElevenLabs conversational-agents
// API, covering the create/update/list/get operations the CLI needs.
package convai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/barysiuk/agentdeck/internal/core"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.elevenlabs.io"

const agentsPath = "/v1/convai/agents"

// Client talks to the conversational-agents API. It satisfies both
// core.Gateway and core.RemoteDirectory.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a client. baseURL may be empty to use DefaultBaseURL.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// CreateAgent creates a remote agent and returns its assigned id.
func (c *Client) CreateAgent(ctx context.Context, req core.AgentRequest) (string, error) {
	var resp struct {
		AgentID string `json:"agent_id"`
	}
	if err := c.do(ctx, http.MethodPost, agentsPath+"/create", requestBody(req), &resp); err != nil {
		return "", err
	}
	if resp.AgentID == "" {
		return "", fmt.Errorf("create agent: response missing agent_id")
	}
	return resp.AgentID, nil
}

// UpdateAgent updates an existing remote agent. The returned id is the
// API's confirmation and is authoritative.
func (c *Client) UpdateAgent(ctx context.Context, id string, req core.AgentRequest) (string, error) {
	var resp struct {
		AgentID string `json:"agent_id"`
	}
	if err := c.do(ctx, http.MethodPatch, agentsPath+"/"+url.PathEscape(id), requestBody(req), &resp); err != nil {
		return "", err
	}
	if resp.AgentID == "" {
		return id, nil
	}
	return resp.AgentID, nil
}

// ListAgents returns summaries of all remote agents, following pagination.
// search may be empty.
func (c *Client) ListAgents(ctx context.Context, search string) ([]core.RemoteAgent, error) {
	var agents []core.RemoteAgent
	cursor := ""

	for {
		q := url.Values{}
		q.Set("page_size", "100")
		if search != "" {
			q.Set("search", search)
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp struct {
			Agents []struct {
				AgentID string `json:"agent_id"`
				Name    string `json:"name"`
			} `json:"agents"`
			HasMore    bool   `json:"has_more"`
			NextCursor string `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, agentsPath+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}

		for _, a := range resp.Agents {
			agents = append(agents, core.RemoteAgent{ID: a.AgentID, Name: a.Name})
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return agents, nil
		}
		cursor = resp.NextCursor
	}
}

// GetAgent returns the full remote document for one agent.
func (c *Client) GetAgent(ctx context.Context, id string) (core.Document, error) {
	var doc core.Document
	if err := c.do(ctx, http.MethodGet, agentsPath+"/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// requestBody builds the outgoing JSON object. Optional fields are only
// inserted when supplied: the API distinguishes "unset" from "explicitly
// empty", so a nil section must vanish from the payload rather than appear
// as null.
func requestBody(req core.AgentRequest) map[string]any {
	body := map[string]any{
		"name": req.Name,
	}
	if req.ConversationConfig != nil {
		body["conversation_config"] = req.ConversationConfig
	}
	if req.PlatformSettings != nil {
		body["platform_settings"] = req.PlatformSettings
	}
	if req.Tags != nil {
		body["tags"] = req.Tags
	}
	return body
}

// do sends one request and decodes the response into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, body map[string]any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}
