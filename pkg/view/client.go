package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/platinummonkey/advocates/pkg/advocates"
)

// Fetcher loads the rows for a query
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]advocates.Advocate, error)
}

// Client fetches advocates from the search endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL. A nil httpClient
// uses one with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch calls GET /api/advocates?q=query and returns the data rows
func (c *Client) Fetch(ctx context.Context, query string) ([]advocates.Advocate, error) {
	endpoint := c.baseURL + "/api/advocates?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch advocates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch advocates: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Data []advocates.Advocate `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode advocates: %w", err)
	}
	if body.Data == nil {
		body.Data = []advocates.Advocate{}
	}

	return body.Data, nil
}
