// Package wikipedia is a minimal client for the Wikipedia REST summary and
// opensearch APIs. It is the remote half of the knowledge resolver; callers
// treat every error as "lookup produced nothing", never as fatal.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://en.wikipedia.org"
	defaultTimeout = 5 * time.Second
	userAgent      = "sage-npc/1.0 (dialogue agent; educational)"
)

// ErrNotFound indicates the topic has no page or no usable extract, as
// opposed to the lookup infrastructure being down.
var ErrNotFound = errors.New("wikipedia: not found")

// Config configures the client. Zero values fall back to defaults.
type Config struct {
	// BaseURL overrides the Wikipedia host, mainly for tests.
	BaseURL string
	// Timeout bounds each request. Defaults to 5 s.
	Timeout time.Duration
}

// Client talks to Wikipedia. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Wikipedia client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type summaryResponse struct {
	Extract string `json:"extract"`
}

// Summary fetches the page summary extract for an exact title. Spaces in the
// title are folded to underscores the way Wikipedia page names expect.
// Returns ErrNotFound when the page does not exist or carries no extract.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	page := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	body, status, err := c.get(ctx, c.baseURL+"/api/rest_v1/page/summary/"+page)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrNotFound
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("wikipedia: summary request returned HTTP %d", status)
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("wikipedia: decode summary response: %w", err)
	}
	if resp.Extract == "" {
		return "", ErrNotFound
	}
	return resp.Extract, nil
}

// Search performs a fuzzy opensearch and returns the top match's title and
// description. Returns ErrNotFound when nothing matches.
func (c *Client) Search(ctx context.Context, query string) (string, string, error) {
	params := url.Values{
		"action": {"opensearch"},
		"search": {query},
		"limit":  {"1"},
		"format": {"json"},
	}
	body, status, err := c.get(ctx, c.baseURL+"/w/api.php?"+params.Encode())
	if err != nil {
		return "", "", err
	}
	if status != http.StatusOK {
		return "", "", fmt.Errorf("wikipedia: search request returned HTTP %d", status)
	}

	// Opensearch responds with a positional array:
	// [query, [titles...], [descriptions...], [urls...]]
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", "", fmt.Errorf("wikipedia: decode search response: %w", err)
	}
	if len(raw) < 2 {
		return "", "", ErrNotFound
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return "", "", fmt.Errorf("wikipedia: decode search titles: %w", err)
	}
	if len(titles) == 0 {
		return "", "", ErrNotFound
	}

	var descriptions []string
	if len(raw) > 2 {
		// Descriptions are best-effort; some mirrors omit them.
		_ = json.Unmarshal(raw[2], &descriptions)
	}
	description := ""
	if len(descriptions) > 0 {
		description = descriptions[0]
	}
	return titles[0], description, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("wikipedia: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("wikipedia: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("wikipedia: read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
