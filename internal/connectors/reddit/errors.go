package reddit

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// RateLimitError represents a rate limit that persisted through all retries.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Attempts  int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("reddit: rate limit exceeded after %d attempts, resets at %s",
		e.Attempts, e.ResetAt.Format(time.RFC3339))
}

// Is lets callers match the domain sentinels with errors.Is.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited || target == domain.ErrFetch
}

// APIError represents a non-success Reddit API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is maps status codes onto the domain sentinels.
// Every API error is a fetch error; 401 is also an authentication error.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrFetch:
		return true
	case domain.ErrAuthentication:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsForbidden checks if the error indicates a private or quarantined resource.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsRedirect checks if the error is an unfollowed redirect. Reddit redirects
// listings of nonexistent communities to the search page.
func IsRedirect(err error) bool {
	code := statusOf(err)
	return code >= 300 && code < 400
}

// IsUnavailable checks if a listing error means the community cannot be
// listed at all (nonexistent, private or banned).
func IsUnavailable(err error) bool {
	return IsNotFound(err) || IsForbidden(err) || IsRedirect(err)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrAuthentication)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
