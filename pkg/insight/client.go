package insight

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/observability"
)

// DefaultTimeout bounds one generation request.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Response is a successful generation.
type Response struct {
	Analysis string   `json:"analysis"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes a generation.
type Metadata struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	PromptLength   int       `json:"promptLength"`
	ResponseLength int       `json:"responseLength"`
}

// errorPayload is the body the service returns when generation fails.
type errorPayload struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

// Client calls an insight-generation endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds each request. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(endpoint); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "insight endpoint")
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Generate validates req and posts it once. An error payload or an empty
// analysis is reported as INSIGHT_ERROR.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode insight request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "build insight request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	host, path := hostPath(c.endpoint)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, path, err)
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, err)
	}
	return decodeResponse(resp.StatusCode, data)
}

func decodeResponse(status int, data []byte) (*Response, error) {
	if status < 200 || status >= 300 {
		var p errorPayload
		if json.Unmarshal(data, &p) == nil && p.Error != "" {
			return nil, errors.New(errors.ErrCodeInsight, "%s: %s (status %d)", p.Error, p.Details, status)
		}
		return nil, errors.New(errors.ErrCodeInsight, "insight service returned status %d", status)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInsight, err, "decode insight response")
	}
	if out.Analysis == "" {
		return nil, errors.New(errors.ErrCodeInsight, "empty analysis from insight service")
	}
	return &out, nil
}

func transportError(ctx context.Context, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "insight request timed out")
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "insight request failed")
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return stderrors.As(err, &t) && t.Timeout()
}

func hostPath(endpoint string) (string, string) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", ""
	}
	return u.Host, u.Path
}
