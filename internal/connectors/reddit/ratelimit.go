package reddit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// RedditRateLimit is the OAuth quota per client id, per 10-minute window.
	RedditRateLimit = 1000

	// MinBuffer is the minimum remaining requests before waiting for reset.
	MinBuffer = 2

	// HeaderRateUsed is the requests-used header.
	HeaderRateUsed = "X-Ratelimit-Used"

	// HeaderRateRemaining is the remaining requests header (may be fractional).
	HeaderRateRemaining = "X-Ratelimit-Remaining"

	// HeaderRateReset is the seconds-until-reset header.
	HeaderRateReset = "X-Ratelimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter implements dual-strategy rate limiting for the Reddit API.
type RateLimiter struct {
	mu        sync.Mutex
	used      int           // From API header
	remaining int           // From API header
	resetTime time.Time     // Derived from API header
	bucket    *rate.Limiter // Proactive throttling
	minBuffer int           // Reserve requests
}

// NewRateLimiter creates a rate limiter that throttles to requestsPerMinute.
func NewRateLimiter(requestsPerMinute float64) *RateLimiter {
	return &RateLimiter{
		remaining: RedditRateLimit, // Assume full quota initially
		bucket:    rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1),
		minBuffer: MinBuffer,
	}
}

// Wait blocks until it's safe to make a request.
// It uses both proactive throttling and reactive API limit checking.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// 1. Check token bucket (proactive throttling)
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	// 2. Check API limit (reactive)
	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining < r.minBuffer && time.Now().Before(resetTime) {
		return sleepContext(ctx, time.Until(resetTime))
	}

	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if used := resp.Header.Get(HeaderRateUsed); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			r.used = val
		}
	}

	// Reddit reports remaining as a float, e.g. "598.0"
	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.ParseFloat(remaining, 64); err == nil {
			r.remaining = int(val)
		}
	}

	// Reset is relative: seconds until the window resets
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			r.resetTime = time.Now().Add(time.Duration(val) * time.Second)
		}
	}
}

// Used returns the requests used in the current window.
func (r *RateLimiter) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

// retryAfter returns the server-requested delay, or zero when absent.
func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
