package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Endpoints holds the cart resource paths, relative to the base URL.
type Endpoints struct {
	Cart   string // GET, returns the cart JSON
	Add    string // POST form-encoded, returns the cart JSON
	Change string // POST JSON {id, quantity}, returns the cart JSON
}

// DefaultEndpoints are the storefront's conventional cart paths.
var DefaultEndpoints = Endpoints{
	Cart:   "/cart.js",
	Add:    "/cart/add.js",
	Change: "/cart/change.js",
}

// Client talks to the remote cart resource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	endpoints  Endpoints
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoints overrides the cart resource paths.
func WithEndpoints(eps Endpoints) Option {
	return func(c *Client) { c.endpoints = eps }
}

// New creates a client for the cart resource rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		endpoints:  DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCart retrieves the current cart state.
func (c *Client) FetchCart(ctx context.Context) (*CartSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.endpoints.Cart, nil)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, "fetch", nil)
}

// AddItem submits an item selection as a form-encoded payload. A structured
// rejection from the backend (out of stock, invalid variant) surfaces as a
// ValidationError carrying the backend's description.
func (c *Client) AddItem(ctx context.Context, form url.Values) (*CartSnapshot, error) {
	body := strings.NewReader(form.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.endpoints.Add, body)
	if err != nil {
		return nil, &NetworkError{Op: "add", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(req, "add", classifyAddRejection)
}

// ChangeQuantity sets the quantity for a line item. Quantity 0 removes the
// line. The caller owns reverting optimistic UI on failure; no rollback
// happens here.
func (c *Client) ChangeQuantity(ctx context.Context, lineKey string, quantity int) (*CartSnapshot, error) {
	payload, err := json.Marshal(map[string]any{"id": lineKey, "quantity": quantity})
	if err != nil {
		return nil, &NetworkError{Op: "change", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.endpoints.Change, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Op: "change", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, "change", nil)
}

// rejectionClassifier turns a non-success response body into a typed error,
// or returns nil to fall through to NetworkError.
type rejectionClassifier func(status int, body []byte) error

func (c *Client) do(req *http.Request, op string, classify rejectionClassifier) (*CartSnapshot, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if classify != nil {
			if rejErr := classify(resp.StatusCode, body); rejErr != nil {
				return nil, rejErr
			}
		}
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}

	var snap CartSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return &snap, nil
}

// classifyAddRejection recognizes the add endpoint's structured rejection
// shape: a 4xx with a JSON body carrying a description field.
func classifyAddRejection(status int, body []byte) error {
	if status < 400 || status > 499 {
		return nil
	}
	var rej struct {
		Description string `json:"description"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(body, &rej); err != nil {
		return nil
	}
	desc := rej.Description
	if desc == "" {
		desc = rej.Message
	}
	if desc == "" {
		return nil
	}
	return &ValidationError{Description: desc, Status: status}
}
