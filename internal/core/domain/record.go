package domain

import (
	"strconv"
	"time"
)

// Columns is the fixed output column order. Record.Values follows it.
var Columns = []string{
	"post_id",
	"community",
	"post_title",
	"post_author",
	"post_created_utc",
	"post_score",
	"post_body",
	"post_permalink",
	"comment_id",
	"comment_author",
	"comment_body",
	"comment_score",
	"comment_created_utc",
}

// TimestampLayout is the layout used for timestamp columns.
const TimestampLayout = time.RFC3339

// Record is one flattened output row: a post joined with at most one comment.
// When HasComment is false all comment fields are empty in the output.
type Record struct {
	PostID        string
	Community     string
	PostTitle     string
	PostAuthor    string
	PostCreatedAt time.Time
	PostScore     int
	PostBody      string
	PostPermalink string

	HasComment       bool
	CommentID        string
	CommentAuthor    string
	CommentBody      string
	CommentScore     int
	CommentCreatedAt time.Time
}

// BuildRecord maps a post and an optional comment to a Record.
// Upstream values are passed through unchanged.
func BuildRecord(post Post, comment *Comment) Record {
	r := Record{
		PostID:        post.ID,
		Community:     post.Community,
		PostTitle:     post.Title,
		PostAuthor:    post.Author,
		PostCreatedAt: post.CreatedAt,
		PostScore:     post.Score,
		PostBody:      post.Body,
		PostPermalink: post.Permalink,
	}
	if comment != nil {
		r.HasComment = true
		r.CommentID = comment.ID
		r.CommentAuthor = comment.Author
		r.CommentBody = comment.Body
		r.CommentScore = comment.Score
		r.CommentCreatedAt = comment.CreatedAt
	}
	return r
}

// BuildRecords flattens a post and its comments into one record per comment,
// or a single comment-less record when there are none.
func BuildRecords(post Post, comments []Comment) []Record {
	if len(comments) == 0 {
		return []Record{BuildRecord(post, nil)}
	}
	records := make([]Record, 0, len(comments))
	for i := range comments {
		records = append(records, BuildRecord(post, &comments[i]))
	}
	return records
}

// Values returns the record's fields as strings in Columns order.
func (r Record) Values() []string {
	values := []string{
		r.PostID,
		r.Community,
		r.PostTitle,
		r.PostAuthor,
		formatTime(r.PostCreatedAt),
		strconv.Itoa(r.PostScore),
		r.PostBody,
		r.PostPermalink,
		"", "", "", "", "",
	}
	if r.HasComment {
		values[8] = r.CommentID
		values[9] = r.CommentAuthor
		values[10] = r.CommentBody
		values[11] = strconv.Itoa(r.CommentScore)
		values[12] = formatTime(r.CommentCreatedAt)
	}
	return values
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
