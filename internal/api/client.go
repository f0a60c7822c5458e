// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

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

	"github.com/faithtalk/faithtalk-tui/internal/logging"
	"github.com/faithtalk/faithtalk-tui/internal/session"
)

const (
	// DefaultBaseURL is the FaithTalk server used when no configuration
	// overrides it.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds every request end to end.
	DefaultTimeout = 10 * time.Second

	// tokenHeader carries the session token on authenticated calls.
	tokenHeader = "X-Auth-Token"

	// maxResponseSize caps response bodies.
	// SECURITY: Response size limit prevents memory exhaustion.
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	userAgent = "faithtalk-tui/1.0"
)

// AuthMode states whether a call carries the session token. Every call site
// declares this explicitly; the client never guesses from the URL.
type AuthMode int

const (
	// Anonymous sends no credentials.
	Anonymous AuthMode = iota
	// Authenticated attaches the stored token. A 401 on such a call
	// invalidates the session store.
	Authenticated
)

// Client is the shared HTTP transport. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a transport rooted at baseURL with the given timeout. Zero
// values fall back to the defaults above.
func New(baseURL string, timeout time.Duration, sessions *session.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// PERFORMANCE: one pooled client for all requests.
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured server root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, auth AuthMode, out any) error {
	return c.do(ctx, http.MethodGet, path, auth, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, auth AuthMode, body, out any) error {
	return c.do(ctx, http.MethodPost, path, auth, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, auth AuthMode, body, out any) error {
	return c.do(ctx, http.MethodPut, path, auth, body, out)
}

// Delete issues a DELETE and decodes the response into out (may be nil).
func (c *Client) Delete(ctx context.Context, path string, auth AuthMode, out any) error {
	return c.do(ctx, http.MethodDelete, path, auth, nil, out)
}

// do runs one request through the full pipeline: encode, attach headers,
// send, classify failures, decode.
func (c *Client) do(ctx context.Context, method, path string, auth AuthMode, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: failed to build request: %w", err)
	}
	c.setHeaders(req, auth, body != nil)

	log := logging.L()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: connection refused, DNS, or timeout.
		log.Warn().Str("method", method).Str("path", path).Err(err).
			Msg("request failed before a response")
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	// Status and duration only; never headers or bodies, the token and the
	// user's messages travel through here.
	log.Debug().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request complete")

	respBody, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp.StatusCode, respBody, auth)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// classify turns a non-2xx response into a taxonomy error. A 401 on an
// authenticated call additionally clears the session store, once per
// response; the resulting Invalidated event is the presentation layer's
// signal to react.
func (c *Client) classify(status int, body []byte, auth AuthMode) error {
	if status == http.StatusUnauthorized && auth == Authenticated && c.sessions != nil {
		if err := c.sessions.Invalidate(); err != nil {
			logging.L().Error().Err(err).Msg("failed to invalidate session after 401")
		}
	}
	return newError(status, body)
}

func (c *Client) setHeaders(req *http.Request, auth AuthMode, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth == Authenticated && c.sessions != nil {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set(tokenHeader, token)
		}
	}
}

// readBody reads the response with the size cap applied.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("%w: response exceeded %d bytes", ErrMalformedResponse, maxResponseSize)
	}
	return body, nil
}
