package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// PostFetcher walks a community's "new" listing and yields the posts that
// fall within a window.
type PostFetcher struct {
	api           driven.RedditAPI
	pageSize      int
	maxPages      int
	chronological bool
}

// NewPostFetcher creates a fetcher using the paging settings of cfg.
func NewPostFetcher(api driven.RedditAPI, cfg domain.CollectionSettings) *PostFetcher {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return &PostFetcher{
		api:           api,
		pageSize:      pageSize,
		maxPages:      cfg.MaxPages,
		chronological: cfg.AssumeChronological,
	}
}

// Posts returns a lazy sequence of at most limit posts created within
// window, in listing order. Pages are requested only as the sequence is
// consumed.
//
// The sequence stops when the cap is reached, the listing is exhausted,
// the page limit is hit, or (when the listing is assumed chronological)
// a post older than the window start is seen. A listing failure is
// yielded once as the final element.
func (f *PostFetcher) Posts(
	ctx context.Context, community string, window domain.Window, limit int,
) iter.Seq2[domain.Post, error] {
	return func(yield func(domain.Post, error) bool) {
		if limit <= 0 {
			return
		}

		var (
			after    string
			accepted int
			skipped  int
			seen     = make(map[string]struct{})
		)

		for page := 1; ; page++ {
			if f.maxPages > 0 && page > f.maxPages {
				logger.Info("r/%s: stopping after %d pages", community, f.maxPages)
				return
			}
			if err := ctx.Err(); err != nil {
				yield(domain.Post{}, fmt.Errorf("%w: %w", domain.ErrFetch, err))
				return
			}

			// Full pages: posts newer than the window do not count toward
			// the cap, so sizing pages by the remaining cap costs round trips.
			result, err := f.api.ListNew(ctx, community, after, f.pageSize)
			if err != nil {
				yield(domain.Post{}, err)
				return
			}
			logger.Debug("r/%s: page %d returned %d posts", community, page, len(result.Posts))

			for _, post := range result.Posts {
				if _, dup := seen[post.ID]; dup {
					continue
				}
				seen[post.ID] = struct{}{}

				if window.Contains(post.CreatedAt) {
					if !yield(post, nil) {
						return
					}
					accepted++
					if accepted >= limit {
						return
					}
					continue
				}

				if f.chronological && window.Before(post.CreatedAt) {
					logger.Debug("r/%s: reached %s, older than window start",
						community, post.CreatedAt.Format(domain.TimestampLayout))
					return
				}
				skipped++
			}

			if result.After == "" || result.After == after || len(result.Posts) == 0 {
				if skipped > 0 {
					logger.Debug("r/%s: skipped %d posts outside the window", community, skipped)
				}
				return
			}
			after = result.After
		}
	}
}
