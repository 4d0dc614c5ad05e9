package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// DefaultSettingsFile is the settings file read when no path is given.
const DefaultSettingsFile = "collect.toml"

// settingsFile mirrors the TOML layout. Pointers distinguish an absent key
// from an explicit zero so defaults apply only to absent keys.
type settingsFile struct {
	CredentialsFile string            `toml:"credentials_file"`
	Collection      collectionSection `toml:"collection"`
	API             apiSection        `toml:"api"`
}

type collectionSection struct {
	Communities           []string `toml:"communities"`
	StartDate             string   `toml:"start_date"`
	EndDate               string   `toml:"end_date"`
	OutputDir             string   `toml:"output_dir"`
	PostsPerCommunity     *int     `toml:"posts_per_community"`
	CommentsPerPost       *int     `toml:"comments_per_post"`
	CommentSort           string   `toml:"comment_sort"`
	ExcludeCommentAuthors []string `toml:"exclude_comment_authors"`
	AssumeChronological   *bool    `toml:"assume_chronological"`
	PageSize              *int     `toml:"page_size"`
	MaxPages              *int     `toml:"max_pages"`
}

type apiSection struct {
	BaseURL           string   `toml:"base_url"`
	TokenURL          string   `toml:"token_url"`
	RequestsPerMinute *float64 `toml:"requests_per_minute"`
	MaxRetries        *int     `toml:"max_retries"`
	RetryDelay        string   `toml:"retry_delay"`
	Timeout           string   `toml:"timeout"`
}

// LoadSettings reads a TOML settings file, applies defaults and validates
// the result. A relative credentials_file is resolved against the
// settings file's directory. All errors wrap domain.ErrConfiguration.
func LoadSettings(path string) (domain.Settings, error) {
	if path == "" {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: read settings: %w", domain.ErrConfiguration, err)
	}

	var raw settingsFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return domain.Settings{}, fmt.Errorf("%w: %s: unknown keys:\n%s",
				domain.ErrConfiguration, path, strict.String())
		}
		return domain.Settings{}, fmt.Errorf("%w: parse %s: %w", domain.ErrConfiguration, path, err)
	}

	settings, err := raw.toSettings()
	if err != nil {
		return domain.Settings{}, err
	}

	if raw.CredentialsFile != "" && !filepath.IsAbs(raw.CredentialsFile) {
		settings.CredentialsFile = filepath.Join(filepath.Dir(path), settings.CredentialsFile)
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

func (f settingsFile) toSettings() (domain.Settings, error) {
	s := domain.DefaultSettings()
	if f.CredentialsFile != "" {
		s.CredentialsFile = f.CredentialsFile
	}

	c := f.Collection
	window, err := domain.ParseWindow(c.StartDate, c.EndDate)
	if err != nil {
		return domain.Settings{}, err
	}
	s.Collection.Window = window

	for _, name := range c.Communities {
		s.Collection.Communities = append(s.Collection.Communities, strings.TrimPrefix(strings.TrimSpace(name), "r/"))
	}
	if c.OutputDir != "" {
		s.Collection.OutputDir = c.OutputDir
	}
	if c.PostsPerCommunity != nil {
		s.Collection.PostsPerCommunity = *c.PostsPerCommunity
	}
	if c.CommentsPerPost != nil {
		s.Collection.CommentsPerPost = *c.CommentsPerPost
	}
	if c.CommentSort != "" {
		s.Collection.CommentSort = domain.CommentSort(strings.ToLower(c.CommentSort))
	}
	s.Collection.ExcludeCommentAuthors = c.ExcludeCommentAuthors
	if c.AssumeChronological != nil {
		s.Collection.AssumeChronological = *c.AssumeChronological
	}
	if c.PageSize != nil {
		s.Collection.PageSize = *c.PageSize
	}
	if c.MaxPages != nil {
		s.Collection.MaxPages = *c.MaxPages
	}

	a := f.API
	if a.BaseURL != "" {
		s.API.BaseURL = a.BaseURL
	}
	if a.TokenURL != "" {
		s.API.TokenURL = a.TokenURL
	}
	if a.RequestsPerMinute != nil {
		s.API.RequestsPerMinute = *a.RequestsPerMinute
	}
	if a.MaxRetries != nil {
		s.API.MaxRetries = *a.MaxRetries
	}
	if s.API.RetryDelay, err = parseDuration("retry_delay", a.RetryDelay, s.API.RetryDelay); err != nil {
		return domain.Settings{}, err
	}
	if s.API.Timeout, err = parseDuration("timeout", a.Timeout, s.API.Timeout); err != nil {
		return domain.Settings{}, err
	}

	return s, nil
}

// parseDuration parses a Go duration string such as "2s", keeping def
// when value is empty.
func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: expected a duration such as \"2s\"", domain.ErrConfiguration, key, value)
	}
	return d, nil
}
