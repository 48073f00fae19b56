package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// Client runs the pipeline of an already running dashboard over HTTP. It
// lets the console and MCP front ends share one configured instance.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Run fetches /api/requests with opts. Error bodies are turned back into
// SchemaError or source unavailable errors.
func (c *Client) Run(ctx context.Context, opts queue.Options) (*queue.Board, error) {
	q := url.Values{}
	if opts.OnlyUnplayed {
		q.Set("unplayed", "true")
	}
	if opts.Submitter != "" {
		q.Set("submitter", opts.Submitter)
	}
	if opts.Sort != "" {
		q.Set("sort", string(opts.Sort))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/requests?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, queue.Unavailable("", "", fmt.Errorf("failed to reach dashboard: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
			return nil, fmt.Errorf("dashboard returned status %d", resp.StatusCode)
		}
		return nil, apiErr.toError()
	}

	var board queue.Board
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &board, nil
}

// Healthy reports whether a dashboard answers on BaseURL.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.Status == healthMagic
}
