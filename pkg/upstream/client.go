// Package upstream implements the resilient HTTP client for the RemnaWave
// admin API: API-key auth, bounded retry with exponential backoff, and
// snake_case normalization of every response body.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bedolaga/remnawave-admin-bff/pkg/logging"
	"github.com/bedolaga/remnawave-admin-bff/pkg/normalize"
)

const (
	apiKeyHeader = "X-API-Key"

	// Backoff starts at 500ms and doubles per retry, capped at 5s.
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second

	defaultTimeout = 10 * time.Second
)

// Config holds the upstream client configuration.
type Config struct {
	// BaseURL is the upstream API root, e.g. "https://panel.example.com/api".
	BaseURL string

	// APIKey is sent as the X-API-Key header. When empty, no auth header is
	// attached at all, which permits talking to an unauthenticated upstream
	// in test environments.
	APIKey string

	// Timeout bounds each individual HTTP attempt. Defaults to 10s.
	Timeout time.Duration

	// MaxAttempts is the total attempt budget per logical request,
	// including the first try. Values below 1 are coerced to 1.
	MaxAttempts int
}

// Client issues requests against the RemnaWave admin API. It is safe for
// concurrent use; the only shared state is the transport connection pool.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxAttempts int
	logger      zerolog.Logger

	// sleep is the backoff wait, replaced in tests to observe durations.
	sleep func(context.Context, time.Duration) error
}

// New creates an upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		maxAttempts: attempts,
		logger:      logging.NewLogger("upstream"),
		sleep:       sleepContext,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Request issues one logical call against the upstream API and returns the
// decoded, snake_case-normalized JSON body.
//
// Transport failures and non-2xx responses are retried until the attempt
// budget is spent, then surface as a *Error carrying the upstream status
// (503 when no response was ever received). Non-2xx statuses are retried
// across the board, 4xx included: the original operator panel retries
// blanket on error, and callers rely on that behavior during upstream
// maintenance windows.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = data
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		result, callErr := c.attempt(ctx, method, endpoint, path, payload)
		if callErr == nil {
			return result, nil
		}

		if attempt >= c.maxAttempts {
			retryExhaustedTotal.Inc()
			c.logger.Error().
				Str("method", method).
				Str("path", path).
				Int("status", callErr.StatusCode).
				Int("attempts", attempt).
				Str("detail", callErr.Detail).
				Msg("upstream request failed")
			return nil, callErr
		}

		retriesTotal.Inc()
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("backoff", backoff).
			Str("detail", callErr.Detail).
			Msg("upstream request error, retrying")

		if err := c.sleep(ctx, backoff); err != nil {
			// Caller went away during backoff; report the last failure.
			return nil, callErr
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// attempt performs a single HTTP exchange. The request is rebuilt from the
// same inputs on every try so retries are byte-identical.
func (c *Client) attempt(ctx context.Context, method, endpoint, path string, payload []byte) (any, *Error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{StatusCode: http.StatusServiceUnavailable, Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(method, path, "transport_error").Inc()
		return nil, &Error{StatusCode: http.StatusServiceUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(method, path, "transport_error").Inc()
		return nil, &Error{StatusCode: http.StatusServiceUnavailable, Detail: err.Error()}
	}

	requestsTotal.WithLabelValues(method, path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(data))}
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &Error{
			StatusCode: http.StatusBadGateway,
			Detail:     fmt.Sprintf("invalid JSON from upstream: %v", err),
		}
	}

	return normalize.Payload(decoded), nil
}
