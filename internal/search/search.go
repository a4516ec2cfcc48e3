// Package search implements the predictive-search overlay's query path: a
// suggest-resource client and a debounced dispatcher rendering grouped
// results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Suggestion is one entry in a suggest-resource group.
type Suggestion struct {
	URL   string `json:"url"`
	Image string `json:"image"`
	Title string `json:"title"`
	Price int64  `json:"price"` // minor units
}

// Results are suggestions grouped by resource type ("products",
// "collections", "pages", ...), exactly as the resource returns them.
type Results map[string][]Suggestion

// DebounceDelay is how long the dispatcher waits after the last keystroke
// before querying the suggest resource.
const DebounceDelay = 300 * time.Millisecond

// Client queries the remote search-suggestion resource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	path       string
}

// NewClient creates a suggest client. path defaults to
// "/search/suggest.json" when empty.
func NewClient(baseURL string, hc *http.Client, path string) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if path == "" {
		path = "/search/suggest.json"
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		path:       path,
	}
}

// Suggest runs a free-text query against the suggest resource.
func (c *Client) Suggest(ctx context.Context, query string) (Results, error) {
	u := c.baseURL + c.path + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("suggest: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	var results Results
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return results, nil
}
