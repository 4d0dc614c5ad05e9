package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
)

// --- Mock implementations for collection testing ---

// mockRedditAPI implements driven.RedditAPI over in-memory listings.
// Pages of a community are chained by their After cursor.
type mockRedditAPI struct {
	mu sync.Mutex

	account  string
	meErr    error
	pages    map[string][]domain.PostPage
	listErr  map[string]error
	comments map[string][]domain.Comment
	comErr   map[string]error

	meCalls      int
	listCalls    map[string]int
	commentCalls []string
	queries      []domain.CommentQuery
	limits       []int
}

var _ driven.RedditAPI = (*mockRedditAPI)(nil)

func newMockRedditAPI() *mockRedditAPI {
	return &mockRedditAPI{
		account:   "collector_bot",
		pages:     make(map[string][]domain.PostPage),
		listErr:   make(map[string]error),
		comments:  make(map[string][]domain.Comment),
		comErr:    make(map[string]error),
		listCalls: make(map[string]int),
	}
}

func (m *mockRedditAPI) Me(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meCalls++
	if m.meErr != nil {
		return "", m.meErr
	}
	return m.account, nil
}

func (m *mockRedditAPI) ListNew(_ context.Context, community, after string, limit int) (*domain.PostPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls[community]++
	m.limits = append(m.limits, limit)

	if err := m.listErr[community]; err != nil {
		return nil, err
	}

	pages := m.pages[community]
	idx := 0
	if after != "" {
		idx = -1
		for i, p := range pages {
			if p.After == after {
				idx = i + 1
				break
			}
		}
	}
	if idx < 0 || idx >= len(pages) {
		return &domain.PostPage{}, nil
	}
	page := pages[idx]
	return &page, nil
}

func (m *mockRedditAPI) ListComments(
	_ context.Context, _, postID string, query domain.CommentQuery,
) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commentCalls = append(m.commentCalls, postID)
	m.queries = append(m.queries, query)

	if err := m.comErr[postID]; err != nil {
		return nil, err
	}
	all := m.comments[postID]
	if query.Limit > 0 && len(all) > query.Limit {
		all = all[:query.Limit]
	}
	return append([]domain.Comment(nil), all...), nil
}

// addPages splits posts into pages of size n for a community.
func (m *mockRedditAPI) addPages(community string, n int, posts ...domain.Post) {
	var pages []domain.PostPage
	for i := 0; i < len(posts); i += n {
		end := min(i+n, len(posts))
		page := domain.PostPage{Posts: posts[i:end]}
		if end < len(posts) {
			page.After = fmt.Sprintf("t3_%s", posts[end-1].ID)
		}
		pages = append(pages, page)
	}
	m.pages[community] = pages
}

// mockRecordWriter implements driven.RecordWriter in memory.
type mockRecordWriter struct {
	written map[string][]domain.Record
	order   []string
	failFor map[string]error
}

var _ driven.RecordWriter = (*mockRecordWriter)(nil)

func newMockRecordWriter() *mockRecordWriter {
	return &mockRecordWriter{
		written: make(map[string][]domain.Record),
		failFor: make(map[string]error),
	}
}

func (w *mockRecordWriter) Write(community string, window domain.Window, records []domain.Record) (string, error) {
	if err := w.failFor[community]; err != nil {
		return "", err
	}
	w.written[community] = records
	w.order = append(w.order, community)
	return fmt.Sprintf("out/%s_data_%s_to_%s.csv", community, window.StartLabel, window.EndLabel), nil
}

// mockManifestWriter implements driven.ManifestWriter in memory.
type mockManifestWriter struct {
	report *domain.RunReport
	err    error
}

var _ driven.ManifestWriter = (*mockManifestWriter)(nil)

func (w *mockManifestWriter) WriteManifest(report *domain.RunReport, _ domain.CollectionSettings) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.report = report
	return "out/collection_metadata.json", nil
}

// --- Fixtures ---

func testWindow() domain.Window {
	w, err := domain.ParseWindow("2025-01-01", "2025-01-03")
	if err != nil {
		panic(err)
	}
	return w
}

func testCollectionSettings(communities ...string) domain.CollectionSettings {
	cfg := domain.DefaultSettings().Collection
	cfg.Communities = communities
	cfg.Window = testWindow()
	cfg.AssumeChronological = true
	return cfg
}

// post builds a post created at noon UTC on date (YYYY-MM-DD).
func post(community, id, date string, numComments int) domain.Post {
	day, err := time.ParseInLocation(domain.DateLayout, date, time.UTC)
	if err != nil {
		panic(err)
	}
	return domain.Post{
		ID:          id,
		Community:   community,
		Title:       "Title " + strings.ToUpper(id),
		Author:      "author_" + id,
		CreatedAt:   day.Add(12 * time.Hour),
		Score:       len(id),
		Body:        "body of " + id,
		Permalink:   "https://reddit.com/r/" + community + "/comments/" + id + "/",
		NumComments: numComments,
	}
}

func comments(postID string, n int) []domain.Comment {
	out := make([]domain.Comment, n)
	for i := range out {
		out[i] = domain.Comment{
			ID:        fmt.Sprintf("%s_c%d", postID, i+1),
			PostID:    postID,
			Author:    fmt.Sprintf("commenter%d", i+1),
			Body:      fmt.Sprintf("comment %d", i+1),
			Score:     n - i,
			CreatedAt: time.Date(2025, 1, 2, 13, i, 0, 0, time.UTC),
		}
	}
	return out
}
