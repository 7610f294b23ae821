package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const defaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the DriftMirror REST API. It handles
// JSON marshaling and error classification and nothing else: no retries,
// no backoff, no response caching. A failed call fails, and the caller
// decides what to do about it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets a bearer token sent on every request. Empty means
// unauthenticated, which local backends accept.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the default 30 s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the backend at baseURL
// (e.g. http://localhost:8000).
func New(baseURL string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// detailBody is the error envelope FastAPI-style backends return.
type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do builds the request, classifies the response, and decodes JSON into
// result. result may be nil for calls whose body the caller ignores.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	c.logger.Debug("request done",
		"method", method, "path", path,
		"status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: extractDetail(respBody),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// extractDetail pulls a user-presentable message out of an error body.
// FastAPI returns {"detail": "..."} for plain errors and
// {"detail": [{...validation...}]} for 422s; only the plain string is
// worth showing.
func extractDetail(body []byte) string {
	var d detailBody
	if err := json.Unmarshal(body, &d); err != nil || len(d.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(d.Detail, &s); err == nil {
		return s
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Health pings the backend. Used by `driftmirror doctor` and on TUI
// startup to distinguish "backend down" from "no goals yet".
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return fmt.Errorf("checking backend health: %w", err)
	}
	return nil
}

// SeedDemo asks the backend to populate demo data. The backend keeps the
// operation idempotent, so calling it twice is harmless.
func (c *Client) SeedDemo(ctx context.Context) error {
	if err := c.post(ctx, "/api/demo/seed", nil, nil); err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}
	return nil
}
