package domain

import "time"

// Post is a top-level submission within a community.
// Posts are immutable once fetched.
type Post struct {
	ID          string
	Community   string
	Title       string
	Author      string
	CreatedAt   time.Time
	Score       int
	Body        string
	Permalink   string
	URL         string
	IsSelf      bool
	NumComments int
}

// Comment is a top-level reply attached to a post.
type Comment struct {
	ID        string
	PostID    string
	Author    string
	CreatedAt time.Time
	Score     int
	Body      string
}

// PostPage is one page of a post listing.
// After is the cursor for the next page; empty when the listing is exhausted.
type PostPage struct {
	Posts []Post
	After string
}

// CommentQuery controls a comment retrieval request.
type CommentQuery struct {
	// Limit is the number of comments requested from upstream.
	Limit int

	// Sort is the upstream comment sort (top, best, new, ...).
	Sort string
}
