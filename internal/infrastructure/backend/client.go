// Package backend implements the REST gateway to the marketplace API. Wire
// field names follow the backend's contract verbatim; the mapping to domain
// types happens here and nowhere else.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/metrics"
)

// TokenSource supplies the bearer token attached to authenticated requests.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// APIError is a non-2xx backend response with its message body, intended for
// direct display as an inline banner.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

// envelope is the common {status, message, data} response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the marketplace backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// request describes one backend call for the shared do path.
type request struct {
	endpoint string // logical name for logs and metrics
	method   string
	path     string
	query    url.Values
	body     any  // JSON-encoded when non-nil
	authed   bool // attach bearer token
}

// do executes the request and decodes the response body into out (skipped
// when out is nil). Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, req, out)
	metrics.BackendRequestDuration.WithLabelValues(req.endpoint).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.log.Debug().Err(err).Str("endpoint", req.endpoint).Msg("backend request failed")
	}
	metrics.BackendRequestsTotal.WithLabelValues(req.endpoint, outcome).Inc()
	return err
}

func (c *Client) doOnce(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", req.endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.endpoint, err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	if req.authed {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", req.endpoint, err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", req.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.endpoint, err)
	}
	return nil
}

// errorMessage extracts the server's message from an error body, falling back
// to the HTTP status text.
func errorMessage(resp *http.Response) string {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
		return env.Message
	}
	return http.StatusText(resp.StatusCode)
}
