package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

const (
	defaultPlatformBase = "https://euw1.api.riotgames.com"
	defaultRegionalBase = "https://europe.api.riotgames.com"

	// Development keys allow 100 requests per 2 minutes per routing value.
	// Limits run at 60% of that so the watcher never trips the app limit.
	requestsPerWindow = 60
	limitWindow       = 2 * time.Minute
	limiterBurst      = 10

	maxRetries       = 3
	defaultRetryWait = 500 * time.Millisecond
	maxRetryAfter    = 10 * time.Second
)

// Options configures a Client. Empty fields fall back to production values.
type Options struct {
	APIKey       string
	PlatformBase string // spectator, league
	RegionalBase string // account, match
	Timeout      time.Duration
	RetryWait    time.Duration
	Metrics      ports.Metrics
}

// Client is the Riot API HTTP client with per-host rate limiting and retries.
// It implements ports.MatchProvider and ports.PlayerProvider.
type Client struct {
	http            *http.Client
	apiKey          string
	platformBase    string
	regionalBase    string
	platformLimiter *rate.Limiter
	regionalLimiter *rate.Limiter
	retryWait       time.Duration
	metrics         ports.Metrics
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	if opts.PlatformBase == "" {
		opts.PlatformBase = defaultPlatformBase
	}
	if opts.RegionalBase == "" {
		opts.RegionalBase = defaultRegionalBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}
	if opts.Metrics == nil {
		opts.Metrics = ports.NopMetrics{}
	}
	every := rate.Every(limitWindow / requestsPerWindow)
	return &Client{
		http:            &http.Client{Timeout: opts.Timeout},
		apiKey:          opts.APIKey,
		platformBase:    opts.PlatformBase,
		regionalBase:    opts.RegionalBase,
		platformLimiter: rate.NewLimiter(every, limiterBurst),
		regionalLimiter: rate.NewLimiter(every, limiterBurst),
		retryWait:       opts.RetryWait,
		metrics:         opts.Metrics,
	}
}

// statusError is a non-2xx answer that was not retried away.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("status %d", e.status)
	}
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

// call performs a GET and classifies the failure: 404 becomes
// ports.ErrNotFound, anything else a *domain.ProviderError.
func (c *Client) call(ctx context.Context, op string, limiter *rate.Limiter, url string, out any) error {
	err := c.get(ctx, limiter, url, out)

	var se *statusError
	switch {
	case err == nil:
		c.metrics.ProviderCall(op, nil)
		return nil
	case errors.As(err, &se) && se.status == http.StatusNotFound:
		c.metrics.ProviderCall(op, nil)
		return fmt.Errorf("riot.%s: %w", op, ports.ErrNotFound)
	case errors.As(err, &se):
		c.metrics.ProviderCall(op, err)
		return &domain.ProviderError{Op: op, Status: se.status, Err: err}
	default:
		c.metrics.ProviderCall(op, err)
		return &domain.ProviderError{Op: op, Err: err}
	}
}

// get does a GET with rate limiting and retries.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, url string, out any) error {
	return c.doWithRetry(ctx, limiter, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-Riot-Token", c.apiKey)
		}
		return c.http.Do(req)
	}, out)
}

// doWithRetry runs fn with exponential backoff. 429 honours Retry-After.
func (c *Client) doWithRetry(ctx context.Context, limiter *rate.Limiter, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries || ctx.Err() != nil {
				return fmt.Errorf("request failed after %d retries: %w", attempt, err)
			}
			c.sleep(ctx, attempt, 0)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if attempt == maxRetries {
				return &statusError{status: resp.StatusCode}
			}
			slog.Warn("rate limited by riot api", "attempt", attempt+1, "retry_after", resp.Header.Get("Retry-After"))
			c.sleep(ctx, attempt, retryAfter(resp.Header.Get("Retry-After")))
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return &statusError{status: resp.StatusCode}
			}
			c.sleep(ctx, attempt, 0)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return &statusError{status: resp.StatusCode, body: string(body)}
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep waits with exponential backoff, or for hint when the server gave one.
func (c *Client) sleep(ctx context.Context, attempt int, hint time.Duration) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * c.retryWait
	if hint > 0 {
		wait = hint
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
