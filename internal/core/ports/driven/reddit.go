package driven

import (
	"context"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// RedditAPI is the upstream read API over posts-by-community and
// comments-by-post. Implementations handle authentication, throttling and
// rate-limit retries internally.
type RedditAPI interface {
	// Me returns the authenticated account name.
	// A rejected credential surfaces as domain.ErrAuthentication.
	Me(ctx context.Context) (string, error)

	// ListNew returns one page of the community's "new" listing, newest first.
	// after is the cursor from the previous page; empty for the first page.
	// A nonexistent, private or banned community yields an empty page.
	ListNew(ctx context.Context, community, after string, limit int) (*domain.PostPage, error)

	// ListComments returns the top-level comments of a post in the
	// requested sort order. Reply threads and "more" stubs are not included.
	ListComments(ctx context.Context, community, postID string, query domain.CommentQuery) ([]domain.Comment, error)
}
