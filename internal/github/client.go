// Package github collects an organization's stats document from the GitHub
// REST API: profile, members, repositories and projects, and for one
// repository its branches, issues, pull requests, commits, workflows,
// discussions and contributor totals.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/orgverse/internal/logging/events"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	apiVersion       = "2022-11-28"
	defaultPerPage   = 100
	statsRetries     = 5
	defaultStatsWait = 3 * time.Second

	acceptJSON        = "application/vnd.github+json"
	acceptDiscussions = "application/vnd.github.v3+json, application/vnd.github.echo-preview+json"
	acceptProjects    = "application/vnd.github.inertia-preview+json"
)

// Config configures a Client. Token is optional; without it the collections
// that need authentication are skipped.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	// Now is used for the branch activity window. Defaults to time.Now.
	Now func() time.Time
	// StatsWait is how long to wait when GitHub is still computing
	// contributor statistics.
	StatsWait time.Duration
}

// Client is a small read-only GitHub REST client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	now        func() time.Time
	statsWait  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("github: invalid API url %q", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	wait := cfg.StatsWait
	if wait <= 0 {
		wait = defaultStatsWait
	}
	return &Client{
		baseURL:    base,
		token:      strings.TrimSpace(cfg.Token),
		httpClient: httpClient,
		now:        now,
		statsWait:  wait,
	}, nil
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c.token != "" && !strings.EqualFold(c.token, "none")
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) doRaw(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.doAccept(ctx, rawURL, acceptJSON)
}

// doAccept is doRaw with a custom media type, for the preview endpoints.
func (c *Client) doAccept(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: GET %s: %w", rawURL, err)
	}
	events.Fetch.Request(rawURL, resp.StatusCode)
	return resp, nil
}

// getJSON fetches one resource and decodes it into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.doRaw(ctx, c.endpoint(path, nil))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: decode %s: %w", path, err)
	}
	return nil
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}
