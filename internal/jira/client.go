package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dt-pm-tools/jira-stories/internal/config"
	"go.uber.org/zap"
)

// Client is a JIRA REST API v3 client.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new JIRA client from the given config.
func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.Token))
	baseURL := strings.TrimRight(cfg.URL, "/")
	return &Client{
		baseURL:    baseURL,
		authHeader: "Basic " + creds,
		httpClient: &http.Client{},
		logger:     logger.Named("jira"),
	}
}

// SearchIssues runs a JQL search and returns the first page of matching issues.
func (c *Client) SearchIssues(ctx context.Context, jql string, fields []string) ([]Issue, error) {
	query := url.Values{}
	query.Set("jql", jql)
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	c.logger.Debug("searching issues", zap.String("jql", jql), zap.Strings("fields", fields))

	var result SearchResponse
	if err := c.get(ctx, "/rest/api/3/search/jql", query, &result); err != nil {
		return nil, err
	}

	c.logger.Debug("search complete", zap.Int("issues", len(result.Issues)), zap.Bool("isLast", result.IsLast))
	return result.Issues, nil
}

// GetIssue fetches a single issue by key.
func (c *Client) GetIssue(ctx context.Context, key string, fields []string) (*Issue, error) {
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	c.logger.Debug("fetching issue", zap.String("key", key))

	var issue Issue
	if err := c.get(ctx, "/rest/api/3/issue/"+url.PathEscape(key), query, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("JIRA API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
}
