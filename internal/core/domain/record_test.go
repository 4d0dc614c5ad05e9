package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPost() Post {
	return Post{
		ID:          "abc123",
		Community:   "golang",
		Title:       "Generics, one year on",
		Author:      "gopher",
		CreatedAt:   time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
		Score:       42,
		Body:        "Line one\nLine two, with comma",
		Permalink:   "https://reddit.com/r/golang/comments/abc123/generics/",
		NumComments: 2,
	}
}

func TestBuildRecord_WithoutComment(t *testing.T) {
	post := testPost()

	r := BuildRecord(post, nil)

	assert.Equal(t, "abc123", r.PostID)
	assert.Equal(t, "golang", r.Community)
	assert.False(t, r.HasComment)
	assert.Empty(t, r.CommentID)

	values := r.Values()
	require.Len(t, values, len(Columns))
	assert.Equal(t, "2025-01-02T15:04:05Z", values[4])
	assert.Equal(t, "42", values[5])
	for i := 8; i < len(Columns); i++ {
		assert.Empty(t, values[i], "column %s should be empty", Columns[i])
	}
}

func TestBuildRecord_WithComment(t *testing.T) {
	post := testPost()
	comment := Comment{
		ID:        "c1",
		PostID:    "abc123",
		Author:    "[deleted]",
		CreatedAt: time.Date(2025, 1, 2, 16, 0, 0, 0, time.UTC),
		Score:     -3,
		Body:      "[removed]",
	}

	r := BuildRecord(post, &comment)

	assert.True(t, r.HasComment)
	values := r.Values()
	assert.Equal(t, []string{
		"abc123",
		"golang",
		"Generics, one year on",
		"gopher",
		"2025-01-02T15:04:05Z",
		"42",
		"Line one\nLine two, with comma",
		"https://reddit.com/r/golang/comments/abc123/generics/",
		"c1",
		"[deleted]",
		"[removed]",
		"-3",
		"2025-01-02T16:00:00Z",
	}, values)
}

func TestBuildRecords(t *testing.T) {
	t.Run("zero comments yields exactly one record", func(t *testing.T) {
		records := BuildRecords(testPost(), nil)

		require.Len(t, records, 1)
		assert.False(t, records[0].HasComment)
	})

	t.Run("one record per comment with identical post fields", func(t *testing.T) {
		post := testPost()
		comments := []Comment{
			{ID: "c1", PostID: post.ID, Author: "a", Score: 10},
			{ID: "c2", PostID: post.ID, Author: "b", Score: 5},
			{ID: "c3", PostID: post.ID, Author: "c", Score: 1},
		}

		records := BuildRecords(post, comments)

		require.Len(t, records, 3)
		first := records[0].Values()[:8]
		for i, r := range records {
			assert.Equal(t, first, r.Values()[:8], "post fields differ in record %d", i)
			assert.Equal(t, comments[i].ID, r.CommentID)
		}
	})

	t.Run("comment pointers are not shared", func(t *testing.T) {
		comments := []Comment{{ID: "c1"}, {ID: "c2"}}

		records := BuildRecords(testPost(), comments)
		comments[0].ID = "changed"

		assert.Equal(t, "c1", records[0].CommentID)
	})
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "post_id", Columns[0])
	assert.Equal(t, "comment_created_utc", Columns[len(Columns)-1])
	assert.Len(t, Columns, 13)
}
