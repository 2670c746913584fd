// Package cbb is the HTTP client for the college basketball statistics
// provider. It exposes the five tabular season feeds the ranking engine
// consumes plus the competition/team/player resolution endpoints.
//
// Auth is a bearer token. Rate limiting is a token bucket; transient
// failures (network errors, 429, 5xx) retry with exponential backoff up to
// a fixed attempt ceiling.
package cbb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// ErrUnavailable reports that the statistics provider could not serve a
// feed. Callers must propagate it — never substitute an empty table, since
// a ranking computed over a missing population would silently misrank the
// rows that are present.
var ErrUnavailable = errors.New("stats provider unavailable")

// Client is the provider HTTP client shared by all endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a provider client with rate limiting.
func NewClient(baseURL, apiKey string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// get performs a rate-limited GET with retry and exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying provider request",
				"path", path, "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("provider %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
			continue
		default:
			// Client errors are not transient; do not retry.
			return nil, fmt.Errorf("%w: %s returned %d: %s",
				ErrUnavailable, path, resp.StatusCode, truncate(body, 200))
		}
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrUnavailable, path, maxRetries+1, lastErr)
}

// getTable fetches a feed and decodes it as a stat table keyed by the
// given column.
func (c *Client) getTable(ctx context.Context, path string, params url.Values, key string) (stattable.Table, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return stattable.Table{}, err
	}
	tbl, err := stattable.FromJSON(body, key)
	if err != nil {
		return stattable.Table{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	return tbl, nil
}

// truncate returns a shortened string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
