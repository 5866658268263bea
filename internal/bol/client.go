// Package bol implements the access layer for the Bol.com marketing catalog
// API: an authenticated HTTP client with token-bucket pacing, retry with
// backoff, and a bounded TTL response cache.
package bol

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
	defaultBaseDelay = time.Second
)

// Options tune a single request. The zero value uses the client defaults.
type Options struct {
	Query         url.Values
	Headers       map[string]string
	Timeout       time.Duration
	Retries       int // overrides the client retry count when > 0
	SkipRateLimit bool
	SkipCache     bool
}

// Result carries a decoded response. Cached is true when the payload was
// served from the response cache without a network call.
type Result[T any] struct {
	Data   T
	Status int
	Header http.Header
	Cached bool
}

// Client is the authenticated marketing API client. The limiter and cache
// are process-wide singletons shared by every client in the process.
type Client struct {
	cfg        config.BolConfig
	httpClient *http.Client
	limiter    *Limiter
	cache      *ResponseCache
	tokens     *tokenSource
	logger     *slog.Logger
	baseDelay  time.Duration
}

func NewClient(cfg config.BolConfig, limiter *Limiter, cache *ResponseCache, clk clock.Clock, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    limiter,
		cache:      cache,
		tokens:     newTokenSource(httpClient, cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, clk),
		logger:     logger,
		baseDelay:  defaultBaseDelay,
	}
}

// IsConfigured reports whether both credentials are present. No network
// call is ever attempted without them.
func (c *Client) IsConfigured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// ClearCache empties the shared response cache.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// Get issues an authenticated GET and decodes the JSON payload into T.
// Successful responses are cached for the duration the upstream allows.
func Get[T any](ctx context.Context, c *Client, path string, opts Options) (*Result[T], error) {
	return roundTrip[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post issues an authenticated POST with a JSON body. Never cached.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts Options) (*Result[T], error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, newTransportError(err)
		}
	}
	return roundTrip[T](ctx, c, http.MethodPost, path, payload, opts)
}

func roundTrip[T any](ctx context.Context, c *Client, method, path string, body []byte, opts Options) (*Result[T], error) {
	raw, err := c.do(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}
	result := &Result[T]{Status: raw.status, Header: raw.header, Cached: raw.cached}
	if len(raw.body) > 0 {
		if err := json.Unmarshal(raw.body, &result.Data); err != nil {
			return nil, newTransportError(err)
		}
	}
	return result, nil
}

type rawResult struct {
	body   []byte
	status int
	header http.Header
	cached bool
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, opts Options) (*rawResult, error) {
	if !c.IsConfigured() {
		return nil, newConfigError("bol client credentials are not configured")
	}

	fingerprint := Fingerprint(method, path, opts.Query)
	cacheable := method == http.MethodGet && !opts.SkipCache
	if cacheable {
		if cached, status, ok := c.cache.Get(fingerprint); ok {
			return &rawResult{body: cached, status: status, cached: true}, nil
		}
	}

	retries := c.cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	if opts.Retries > 0 {
		retries = opts.Retries
	}

	var lastErr *APIError
	for attempt := 0; attempt <= retries; attempt++ {
		// Every attempt pays for its own token, retries included.
		if !opts.SkipRateLimit {
			if err := c.limiter.Acquire(ctx); err != nil {
				return nil, newTransportError(err)
			}
		}

		raw, apiErr := c.attempt(ctx, method, path, body, opts)
		if apiErr == nil {
			if cacheable {
				if ttl := cacheTTL(raw.header); ttl > 0 {
					c.cache.Set(fingerprint, raw.body, raw.status, ttl)
				}
			}
			return raw, nil
		}

		if !apiErr.Retryable() {
			return nil, apiErr
		}
		lastErr = apiErr
		if attempt == retries {
			break
		}

		delay := c.retryDelay(apiErr, attempt)
		c.logger.Warn("retrying bol request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", apiErr.Error()),
		)
		select {
		case <-ctx.Done():
			return nil, newTransportError(ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, path string, body []byte, opts Options) (*rawResult, *APIError) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, newTransportError(err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(opts.Query) > 0 {
		reqURL += "?" + opts.Query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, reqURL, reader)
	if err != nil {
		return nil, newTransportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode, parseProblem(respBody))
		apiErr.retryAfter = retryAfter(resp.Header)
		return nil, apiErr
	}
	return &rawResult{body: respBody, status: resp.StatusCode, header: resp.Header}, nil
}

// retryDelay honors an upstream Retry-After hint, otherwise backs off
// linearly on the attempt number. Network and HTTP failures share the same
// schedule.
func (c *Client) retryDelay(apiErr *APIError, attempt int) time.Duration {
	if apiErr.retryAfter > 0 {
		return apiErr.retryAfter
	}
	return c.baseDelay * time.Duration(attempt+1)
}

func retryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// cacheTTL derives the cache lifetime from Cache-Control max-age. Absent or
// zero max-age means the response is not cached at all.
func cacheTTL(header http.Header) time.Duration {
	cc := header.Get("Cache-Control")
	if cc == "" {
		return 0
	}
	for _, directive := range strings.Split(cc, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	return 0
}

func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(err)
	}
	return newTransportError(err)
}
