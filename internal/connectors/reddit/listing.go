package reddit

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// Thing kinds used by the API.
const (
	KindComment = "t1"
	KindLink    = "t3"
	KindMore    = "more"
)

// PermalinkBase prefixes the relative permalinks returned by the API.
const PermalinkBase = "https://reddit.com"

// listing is the envelope of every paginated response.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing is a listing child; Data is decoded according to Kind.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// linkData is the subset of a t3 (post) we keep.
type linkData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	Selftext    string  `json:"selftext"`
	IsSelf      bool    `json:"is_self"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	NumComments int     `json:"num_comments"`
}

// commentData is the subset of a t1 (comment) we keep.
type commentData struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	LinkID     string  `json:"link_id"`
	ParentID   string  `json:"parent_id"`
}

// me is the /api/v1/me response.
type me struct {
	Name string `json:"name"`
}

// toPosts converts the t3 children of a listing page.
// Children of other kinds are skipped; undecodable ones too.
func (l *listing) toPosts() []domain.Post {
	posts := make([]domain.Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != KindLink {
			continue
		}
		var d linkData
		if err := json.Unmarshal(child.Data, &d); err != nil {
			continue
		}
		posts = append(posts, d.toPost())
	}
	return posts
}

func (d linkData) toPost() domain.Post {
	return domain.Post{
		ID:          d.ID,
		Community:   d.Subreddit,
		Title:       d.Title,
		Author:      d.Author,
		CreatedAt:   fromEpoch(d.CreatedUTC),
		Score:       d.Score,
		Body:        postBody(d),
		Permalink:   PermalinkBase + d.Permalink,
		URL:         d.URL,
		IsSelf:      d.IsSelf,
		NumComments: d.NumComments,
	}
}

// postBody is the self text for text posts, or a pointer to the link target.
func postBody(d linkData) string {
	if d.IsSelf {
		return d.Selftext
	}
	if d.URL != "" {
		return "Link post: " + d.URL
	}
	return ""
}

// toComments converts the top-level t1 children of a comment listing.
// "more" stubs and replies (parent is not the post) are dropped.
func (l *listing) toComments(postID string) []domain.Comment {
	parent := KindLink + "_" + postID
	comments := make([]domain.Comment, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != KindComment {
			continue
		}
		var d commentData
		if err := json.Unmarshal(child.Data, &d); err != nil {
			continue
		}
		if d.ParentID != "" && d.ParentID != parent {
			continue
		}
		linkID := strings.TrimPrefix(d.LinkID, KindLink+"_")
		if linkID == "" {
			linkID = postID
		}
		comments = append(comments, domain.Comment{
			ID:        d.ID,
			PostID:    linkID,
			Author:    d.Author,
			CreatedAt: fromEpoch(d.CreatedUTC),
			Score:     d.Score,
			Body:      d.Body,
		})
	}
	return comments
}

// fromEpoch converts Reddit's float seconds to UTC time.
func fromEpoch(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}
