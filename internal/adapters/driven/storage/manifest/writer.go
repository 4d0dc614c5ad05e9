package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ManifestWriter = (*Writer)(nil)

// Manifest is the JSON document written for a run.
type Manifest struct {
	RunID             string      `json:"run_id"`
	Account           string      `json:"account,omitempty"`
	CollectionDate    time.Time   `json:"collection_date"`
	CompletionDate    time.Time   `json:"completion_date"`
	RuntimeSeconds    float64     `json:"runtime_seconds"`
	DateRange         DateRange   `json:"date_range"`
	TargetPostsPerSub int         `json:"target_posts_per_sub"`
	CommentsPerPost   int         `json:"comments_per_post"`
	CommentSort       string      `json:"comment_sort"`
	TotalPosts        int         `json:"total_posts_collected"`
	TotalRecords      int         `json:"total_records_written"`
	FailedCommunities int         `json:"failed_communities"`
	Communities       []Community `json:"subreddits"`
	FilesCreated      []string    `json:"files_created"`
}

// DateRange is the configured window; End is exclusive.
type DateRange struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	EndExclusive bool   `json:"end_exclusive"`
}

// Community is one community's outcome.
type Community struct {
	Name            string  `json:"name"`
	Posts           int     `json:"posts"`
	Records         int     `json:"records"`
	File            string  `json:"file,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	ErrorKind       string  `json:"error_kind,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Writer writes run manifests into a directory.
type Writer struct {
	dir string
}

// New creates a manifest writer for dir.
func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// FileName returns the manifest file name for a window.
func FileName(window domain.Window) string {
	return fmt.Sprintf("collection_metadata_%s_to_%s.json", window.StartLabel, window.EndLabel)
}

// Build converts a run report into its manifest.
func Build(report *domain.RunReport, settings domain.CollectionSettings) Manifest {
	m := Manifest{
		RunID:          report.RunID,
		Account:        report.Account,
		CollectionDate: report.StartedAt.UTC(),
		CompletionDate: report.FinishedAt.UTC(),
		RuntimeSeconds: report.Duration().Seconds(),
		DateRange: DateRange{
			Start:        report.Window.StartLabel,
			End:          report.Window.EndLabel,
			EndExclusive: true,
		},
		TargetPostsPerSub: settings.PostsPerCommunity,
		CommentsPerPost:   settings.CommentsPerPost,
		CommentSort:       string(settings.CommentSort),
		TotalPosts:        report.TotalPosts(),
		TotalRecords:      report.TotalRecords(),
		FailedCommunities: report.FailedCount(),
		Communities:       make([]Community, 0, len(report.Communities)),
		FilesCreated:      report.Files(),
	}
	for _, c := range report.Communities {
		entry := Community{
			Name:            c.Community,
			Posts:           c.Posts,
			Records:         c.Records,
			File:            c.File,
			DurationSeconds: c.Duration.Seconds(),
		}
		if c.Err != nil {
			entry.ErrorKind = c.ErrorKind()
			entry.Error = c.Err.Error()
		}
		m.Communities = append(m.Communities, entry)
	}
	return m
}

// WriteManifest writes the report as indented JSON and returns the path.
func (w *Writer) WriteManifest(report *domain.RunReport, settings domain.CollectionSettings) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output directory: %w", domain.ErrIO, err)
	}

	data, err := json.MarshalIndent(Build(report, settings), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(w.dir, FileName(report.Window))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrIO, path, err)
	}
	return path, nil
}
