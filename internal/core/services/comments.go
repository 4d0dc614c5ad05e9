package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
)

// CommentExtractor retrieves the first top-level comments of a post.
type CommentExtractor struct {
	api      driven.RedditAPI
	sort     domain.CommentSort
	excluded map[string]struct{}
}

// NewCommentExtractor creates an extractor using the comment settings of cfg.
func NewCommentExtractor(api driven.RedditAPI, cfg domain.CollectionSettings) *CommentExtractor {
	excluded := make(map[string]struct{}, len(cfg.ExcludeCommentAuthors))
	for _, author := range cfg.ExcludeCommentAuthors {
		excluded[strings.ToLower(author)] = struct{}{}
	}
	return &CommentExtractor{
		api:      api,
		sort:     cfg.CommentSort,
		excluded: excluded,
	}
}

// Comments returns up to maxComments top-level comments of post, in upstream sort
// order. Posts reporting no comments are not requested.
func (e *CommentExtractor) Comments(ctx context.Context, post domain.Post, maxComments int) ([]domain.Comment, error) {
	if maxComments <= 0 || post.NumComments == 0 {
		return nil, nil
	}

	// Excluded authors are dropped after retrieval, so ask for a full page
	// to still fill the cap.
	limit := maxComments
	if len(e.excluded) > 0 {
		limit = domain.MaxCommentsPerPost
	}

	comments, err := e.api.ListComments(ctx, post.Community, post.ID, domain.CommentQuery{
		Limit: limit,
		Sort:  string(e.sort),
	})
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Comment, 0, min(maxComments, len(comments)))
	for _, c := range comments {
		if _, skip := e.excluded[strings.ToLower(c.Author)]; skip {
			continue
		}
		kept = append(kept, c)
		if len(kept) == maxComments {
			break
		}
	}
	return kept, nil
}
