// Package assistant starts runs on a hosted assistant thread (OpenAI
// Assistants API v2).
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client talks to the assistants API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new assistant client.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger.Named("assistant"),
	}
}

// Run is the run object returned when a thread is created and run.
type Run struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	ThreadID    string `json:"thread_id"`
	AssistantID string `json:"assistant_id"`
	Status      string `json:"status"`
	Model       string `json:"model,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type createThreadAndRunRequest struct {
	AssistantID string       `json:"assistant_id"`
	Thread      threadParams `json:"thread"`
}

type threadParams struct {
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CreateThreadAndRun creates a thread holding one user message and starts a
// run of the assistant on it.
func (c *Client) CreateThreadAndRun(ctx context.Context, assistantID, content string) (*Run, error) {
	if c.apiKey == "" {
		return nil, errors.New("assistant API key is not set")
	}
	if assistantID == "" {
		return nil, errors.New("assistant ID is not set")
	}

	reqBody := createThreadAndRunRequest{
		AssistantID: assistantID,
		Thread: threadParams{
			Messages: []message{{Role: "user", Content: content}},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/threads/runs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OpenAI-Beta", "assistants=v2")

	c.logger.Debug("creating thread and run", zap.String("assistant", assistantID), zap.Int("bytes", len(content)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant API returned %d: %s", resp.StatusCode, string(body))
	}

	var run Run
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.logger.Info("run started", zap.String("run", run.ID), zap.String("thread", run.ThreadID), zap.String("status", run.Status))
	return &run, nil
}
