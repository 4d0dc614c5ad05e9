package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RedditAPI = (*Client)(nil)

// maxErrorBody bounds how much of an error response is kept in APIError.
const maxErrorBody = 512

// Options tunes the client. Zero values fall back to the domain defaults.
type Options struct {
	BaseURL           string
	TokenURL          string
	RequestsPerMinute float64
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
}

// OptionsFromSettings maps API settings onto client options.
func OptionsFromSettings(s domain.APISettings) Options {
	return Options{
		BaseURL:           s.BaseURL,
		TokenURL:          s.TokenURL,
		RequestsPerMinute: s.RequestsPerMinute,
		MaxRetries:        s.MaxRetries,
		RetryDelay:        s.RetryDelay,
		Timeout:           s.Timeout,
	}
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = domain.DefaultBaseURL
	}
	if o.TokenURL == "" {
		o.TokenURL = domain.DefaultTokenURL
	}
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = domain.DefaultRequestsPerMinute
	}
	if o.Timeout <= 0 {
		o.Timeout = domain.DefaultTimeout
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return o
}

// Client is a read-only Reddit API client with rate limiting.
type Client struct {
	http        *http.Client
	baseURL     string
	rateLimiter *RateLimiter
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a client authenticated with the password grant.
// No request is made here; credentials are exchanged for a token on the
// first API call, so rejected credentials surface there.
func NewClient(ctx context.Context, creds domain.Credentials, opts Options) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	base := &http.Client{
		Timeout:   opts.Timeout,
		Transport: &userAgentTransport{userAgent: creds.UserAgent, base: http.DefaultTransport},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	hc := oauth2.NewClient(ctx, NewPasswordTokenSource(ctx, creds, opts.TokenURL))
	hc.Timeout = opts.Timeout
	hc.CheckRedirect = noRedirect

	return newClient(hc, opts), nil
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// The http.Client is responsible for authentication.
func NewClientWithHTTPClient(httpClient *http.Client, opts Options) *Client {
	return newClient(httpClient, opts.withDefaults())
}

func newClient(hc *http.Client, opts Options) *Client {
	return &Client{
		http:        hc,
		baseURL:     opts.BaseURL,
		rateLimiter: NewRateLimiter(opts.RequestsPerMinute),
		maxRetries:  opts.MaxRetries,
		retryDelay:  opts.RetryDelay,
	}
}

// Me returns the authenticated account name.
func (c *Client) Me(ctx context.Context) (string, error) {
	var out me
	if err := c.get(ctx, "/api/v1/me", url.Values{}, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// ListNew returns one page of a community's "new" listing.
func (c *Client) ListNew(ctx context.Context, community, after string, limit int) (*domain.PostPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if after != "" {
		params.Set("after", after)
	}

	var out listing
	err := c.get(ctx, "/r/"+url.PathEscape(community)+"/new", params, &out)
	if err != nil {
		if IsUnavailable(err) {
			logger.Warn("r/%s is not available: %v", community, err)
			return &domain.PostPage{}, nil
		}
		return nil, fmt.Errorf("list r/%s: %w", community, err)
	}

	return &domain.PostPage{
		Posts: out.toPosts(),
		After: out.Data.After,
	}, nil
}

// ListComments returns the top-level comments of a post.
func (c *Client) ListComments(
	ctx context.Context, community, postID string, query domain.CommentQuery,
) ([]domain.Comment, error) {
	params := url.Values{}
	params.Set("depth", "1")
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}

	// The response is [post listing, comment listing].
	var out []listing
	path := "/r/" + url.PathEscape(community) + "/comments/" + url.PathEscape(postID)
	if err := c.get(ctx, path, params, &out); err != nil {
		if IsNotFound(err) || IsForbidden(err) {
			logger.Warn("Comments for %s are not available: %v", postID, err)
			return nil, nil
		}
		return nil, fmt.Errorf("list comments for %s: %w", postID, err)
	}
	if len(out) < 2 {
		return nil, nil
	}
	return out[1].toComments(postID), nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// get performs a GET against the API and decodes the JSON body into out.
// 429 responses are retried up to maxRetries times, honouring Retry-After.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("raw_json", "1")
	endpoint := c.baseURL + path + "?" + params.Encode()

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %w", domain.ErrFetch, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%w: build request: %w", domain.ErrFetch, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: GET %s: %w", domain.ErrFetch, path, err)
		}

		c.rateLimiter.UpdateFromResponse(resp)
		logger.Debug("GET %s -> %d (ratelimit used=%d remaining=%d)",
			path, resp.StatusCode, c.rateLimiter.Used(), c.rateLimiter.Remaining())

		if resp.StatusCode != http.StatusTooManyRequests {
			return decodeResponse(resp, endpoint, out)
		}

		wait := retryAfter(resp)
		drainAndClose(resp)

		if attempt >= c.maxRetries {
			return &RateLimitError{
				ResetAt:   c.rateLimiter.ResetTime(),
				Remaining: c.rateLimiter.Remaining(),
				Attempts:  attempt + 1,
			}
		}
		if wait == 0 {
			wait = c.retryDelay * time.Duration(attempt+1)
		}
		logger.Warn("Rate limited on %s, retrying in %s (attempt %d/%d)", path, wait, attempt+1, c.maxRetries)
		if err := sleepContext(ctx, wait); err != nil {
			return fmt.Errorf("%w: retry wait: %w", domain.ErrFetch, err)
		}
	}
}

// decodeResponse converts non-2xx responses to APIError and decodes the rest.
func decodeResponse(resp *http.Response, endpoint string, out any) error {
	defer drainAndClose(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			URL:        endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrFetch, endpoint, err)
	}
	return nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}
