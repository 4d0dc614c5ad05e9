package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalSettings = `
[collection]
communities = ["politics", "r/PoliticalDiscussion"]
start_date = "2025-01-01"
end_date = "2025-07-01"
`

func TestLoadSettings_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "collect.toml", minimalSettings)

	s, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"politics", "PoliticalDiscussion"}, s.Collection.Communities)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), s.Collection.Window.Start)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), s.Collection.Window.End)
	assert.Equal(t, "2025-07-01", s.Collection.Window.EndLabel)

	def := domain.DefaultSettings()
	assert.Equal(t, def.Collection.OutputDir, s.Collection.OutputDir)
	assert.Equal(t, def.Collection.PostsPerCommunity, s.Collection.PostsPerCommunity)
	assert.Equal(t, def.Collection.CommentsPerPost, s.Collection.CommentsPerPost)
	assert.Equal(t, domain.CommentSortTop, s.Collection.CommentSort)
	assert.True(t, s.Collection.AssumeChronological)
	assert.Equal(t, def.API, s.API)
	// The default credentials file stays relative to the working directory.
	assert.Equal(t, domain.DefaultCredentialsFile, s.CredentialsFile)
}

func TestLoadSettings_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "collect.toml", `
credentials_file = "secrets/reddit.yaml"

[collection]
communities = ["golang"]
start_date = "2024-06-01"
end_date = "2024-06-08"
output_dir = "out"
posts_per_community = 50
comments_per_post = 0
comment_sort = "New"
exclude_comment_authors = ["AutoModerator"]
assume_chronological = false
page_size = 25
max_pages = 4

[api]
base_url = "http://localhost:9999"
token_url = "http://localhost:9999/token"
requests_per_minute = 30.0
max_retries = 1
retry_delay = "500ms"
timeout = "1m"
`)

	s, err := LoadSettings(path)

	require.NoError(t, err)
	c := s.Collection
	assert.Equal(t, "out", c.OutputDir)
	assert.Equal(t, 50, c.PostsPerCommunity)
	assert.Equal(t, 0, c.CommentsPerPost)
	assert.Equal(t, domain.CommentSortNew, c.CommentSort)
	assert.Equal(t, []string{"AutoModerator"}, c.ExcludeCommentAuthors)
	assert.False(t, c.AssumeChronological)
	assert.Equal(t, 25, c.PageSize)
	assert.Equal(t, 4, c.MaxPages)

	assert.Equal(t, "http://localhost:9999", s.API.BaseURL)
	assert.Equal(t, "http://localhost:9999/token", s.API.TokenURL)
	assert.Equal(t, 30.0, s.API.RequestsPerMinute)
	assert.Equal(t, 1, s.API.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, s.API.RetryDelay)
	assert.Equal(t, time.Minute, s.API.Timeout)

	assert.Equal(t, filepath.Join(dir, "secrets", "reddit.yaml"), s.CredentialsFile)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "malformed toml",
			content: "[collection\ncommunities = [",
			wantMsg: "parse",
		},
		{
			name:    "unknown key",
			content: minimalSettings + "typo_key = 1\n",
			wantMsg: "unknown keys",
		},
		{
			name:    "missing dates",
			content: "[collection]\ncommunities = [\"golang\"]\n",
			wantMsg: "start date",
		},
		{
			name: "end before start",
			content: `[collection]
communities = ["golang"]
start_date = "2025-02-01"
end_date = "2025-01-01"`,
			wantMsg: "must be before",
		},
		{
			name: "no communities",
			content: `[collection]
start_date = "2025-01-01"
end_date = "2025-01-02"`,
			wantMsg: "at least one community",
		},
		{
			name: "invalid community",
			content: `[collection]
communities = ["not a name"]
start_date = "2025-01-01"
end_date = "2025-01-02"`,
			wantMsg: "invalid community",
		},
		{
			name:    "bad duration",
			content: minimalSettings + "[api]\nretry_delay = \"soon\"\n",
			wantMsg: "retry_delay",
		},
		{
			name:    "bad sort",
			content: minimalSettings + "comment_sort = \"random\"\n",
			wantMsg: "comment_sort",
		},
		{
			name:    "comment cap too large",
			content: minimalSettings + "comments_per_post = 1000\n",
			wantMsg: "comments_per_post",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "collect.toml", tt.content)

			_, err := LoadSettings(path)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
