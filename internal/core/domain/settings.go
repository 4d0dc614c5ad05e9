package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Defaults for collection and API settings.
const (
	DefaultOutputDir         = "csv_data"
	DefaultPostsPerCommunity = 1000
	DefaultCommentsPerPost   = 3
	DefaultCommentSort       = "top"
	DefaultPageSize          = 100
	DefaultCredentialsFile   = "config.json"

	DefaultBaseURL           = "https://oauth.reddit.com"
	DefaultTokenURL          = "https://www.reddit.com/api/v1/access_token"
	DefaultRequestsPerMinute = 90
	DefaultMaxRetries        = 4 // five attempts in total
	DefaultRetryDelay        = 2 * time.Second
	DefaultTimeout           = 30 * time.Second

	// MaxPageSize is the largest page Reddit serves for a listing.
	MaxPageSize = 100

	// MaxCommentsPerPost bounds the per-post comment cap.
	MaxCommentsPerPost = 100
)

// communityPattern is Reddit's subreddit naming rule.
var communityPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// CommentSort identifies an upstream comment ordering.
type CommentSort string

// Comment sorts accepted by the comments endpoint.
const (
	CommentSortConfidence    CommentSort = "confidence"
	CommentSortBest          CommentSort = "best"
	CommentSortTop           CommentSort = "top"
	CommentSortNew           CommentSort = "new"
	CommentSortOld           CommentSort = "old"
	CommentSortControversial CommentSort = "controversial"
	CommentSortQA            CommentSort = "qa"
)

// IsValid returns true if the sort is recognised.
func (s CommentSort) IsValid() bool {
	switch s {
	case CommentSortConfidence, CommentSortBest, CommentSortTop, CommentSortNew,
		CommentSortOld, CommentSortControversial, CommentSortQA:
		return true
	default:
		return false
	}
}

// CollectionSettings describes what a run collects and where it writes.
type CollectionSettings struct {
	// Communities are processed in order.
	Communities []string

	// Window bounds post creation times.
	Window Window

	// OutputDir receives one CSV per community and the run manifest.
	OutputDir string

	// PostsPerCommunity caps the number of posts kept per community.
	PostsPerCommunity int

	// CommentsPerPost caps the number of top-level comments per post.
	// Zero disables comment retrieval.
	CommentsPerPost int

	// CommentSort is the upstream comment order.
	CommentSort CommentSort

	// ExcludeCommentAuthors drops comments by these authors (e.g. AutoModerator)
	// before the per-post cap is applied.
	ExcludeCommentAuthors []string

	// AssumeChronological enables early termination once a post older than
	// the window start is seen. Only safe while the "new" listing is
	// strictly descending by creation time.
	AssumeChronological bool

	// PageSize is the number of posts requested per listing page.
	PageSize int

	// MaxPages stops a community's listing after this many pages.
	// Zero means no page limit.
	MaxPages int
}

// APISettings tunes the Reddit client.
type APISettings struct {
	BaseURL           string
	TokenURL          string
	RequestsPerMinute float64
	// MaxRetries is the number of retries after a 429, not counting
	// the first request.
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Settings is the full process-level configuration, read once at startup.
type Settings struct {
	Collection      CollectionSettings
	API             APISettings
	CredentialsFile string
}

// DefaultSettings returns settings with sensible defaults.
// Communities and the window have no default and must be configured.
func DefaultSettings() Settings {
	return Settings{
		Collection: CollectionSettings{
			OutputDir:           DefaultOutputDir,
			PostsPerCommunity:   DefaultPostsPerCommunity,
			CommentsPerPost:     DefaultCommentsPerPost,
			CommentSort:         DefaultCommentSort,
			AssumeChronological: true,
			PageSize:            DefaultPageSize,
		},
		API: APISettings{
			BaseURL:           DefaultBaseURL,
			TokenURL:          DefaultTokenURL,
			RequestsPerMinute: DefaultRequestsPerMinute,
			MaxRetries:        DefaultMaxRetries,
			RetryDelay:        DefaultRetryDelay,
			Timeout:           DefaultTimeout,
		},
		CredentialsFile: DefaultCredentialsFile,
	}
}

// Validate checks the settings. Errors wrap ErrConfiguration.
func (s Settings) Validate() error {
	if err := s.Collection.Validate(); err != nil {
		return err
	}
	if err := s.API.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.CredentialsFile) == "" {
		return fmt.Errorf("%w: credentials_file is required", ErrConfiguration)
	}
	return nil
}

// Validate checks the collection settings.
func (c CollectionSettings) Validate() error {
	if len(c.Communities) == 0 {
		return fmt.Errorf("%w: at least one community is required", ErrConfiguration)
	}
	seen := make(map[string]bool, len(c.Communities))
	for _, name := range c.Communities {
		if !ValidCommunity(name) {
			return fmt.Errorf("%w: invalid community name %q", ErrConfiguration, name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate community %q", ErrConfiguration, name)
		}
		seen[key] = true
	}
	if c.Window.Start.IsZero() || !c.Window.Start.Before(c.Window.End) {
		return fmt.Errorf("%w: a date window with start before end is required", ErrConfiguration)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir is required", ErrConfiguration)
	}
	if c.PostsPerCommunity < 1 {
		return fmt.Errorf("%w: posts_per_community must be at least 1", ErrConfiguration)
	}
	if c.CommentsPerPost < 0 || c.CommentsPerPost > MaxCommentsPerPost {
		return fmt.Errorf("%w: comments_per_post must be between 0 and %d", ErrConfiguration, MaxCommentsPerPost)
	}
	if !c.CommentSort.IsValid() {
		return fmt.Errorf("%w: unknown comment_sort %q", ErrConfiguration, c.CommentSort)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrConfiguration, MaxPageSize)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("%w: max_pages must not be negative", ErrConfiguration)
	}
	return nil
}

// Validate checks the API settings.
func (a APISettings) Validate() error {
	if a.BaseURL == "" || a.TokenURL == "" {
		return fmt.Errorf("%w: base_url and token_url are required", ErrConfiguration)
	}
	if a.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: requests_per_minute must be positive", ErrConfiguration)
	}
	if a.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must not be negative", ErrConfiguration)
	}
	if a.RetryDelay < 0 || a.Timeout < 0 {
		return fmt.Errorf("%w: retry_delay and timeout must not be negative", ErrConfiguration)
	}
	return nil
}

// ValidCommunity reports whether name is a well-formed subreddit name.
func ValidCommunity(name string) bool {
	return communityPattern.MatchString(name)
}
