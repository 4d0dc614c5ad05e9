package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driving"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// Ensure CollectService implements the interface.
var _ driving.Collector = (*CollectService)(nil)

// CollectService runs a collection over the configured communities.
// Communities are processed one at a time; a failure in one is recorded
// on its report and the run moves on to the next.
type CollectService struct {
	api      driven.RedditAPI
	records  driven.RecordWriter
	manifest driven.ManifestWriter
	settings domain.CollectionSettings

	fetcher   *PostFetcher
	extractor *CommentExtractor

	now func() time.Time
}

// NewCollectService creates a collect service.
// The manifest writer is optional; if nil, no manifest is written.
func NewCollectService(
	api driven.RedditAPI,
	records driven.RecordWriter,
	manifest driven.ManifestWriter,
	settings domain.CollectionSettings,
) *CollectService {
	return &CollectService{
		api:       api,
		records:   records,
		manifest:  manifest,
		settings:  settings,
		fetcher:   NewPostFetcher(api, settings),
		extractor: NewCommentExtractor(api, settings),
		now:       time.Now,
	}
}

// Check verifies the credentials by asking for the authenticated account.
func (s *CollectService) Check(ctx context.Context) (string, error) {
	name, err := s.api.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("verify credentials: %w", err)
	}
	return name, nil
}

// Collect processes every configured community in order.
//
// Credentials are verified before anything is written. Only an
// authentication failure aborts the run; other failures are recorded on
// the community's report.
func (s *CollectService) Collect(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     uuid.New().String(),
		Window:    s.settings.Window,
		StartedAt: s.now(),
	}
	logger.StartRun(report.StartedAt)
	defer logger.EndRun()

	account, err := s.api.Me(ctx)
	switch {
	case err == nil:
		report.Account = account
		logger.Info("Authenticated as u/%s", account)
	case domain.IsFatal(err):
		return nil, fmt.Errorf("verify credentials: %w", err)
	default:
		// The identity check is advisory; listings may still work.
		logger.Warn("Could not verify account: %v", err)
	}

	logger.Info("Collecting %d communities for %s", len(s.settings.Communities), s.settings.Window)

	for i, community := range s.settings.Communities {
		if err := ctx.Err(); err != nil {
			return s.finish(report), err
		}

		logger.Community(community, i+1, len(s.settings.Communities))
		cr := s.collectCommunity(ctx, community)
		report.Communities = append(report.Communities, cr)

		if cr.Err != nil {
			logger.Error("r/%s failed (%s): %v", community, cr.ErrorKind(), cr.Err)
			if errors.Is(cr.Err, domain.ErrAuthentication) {
				// Remaining communities would fail the same way.
				return s.finish(report), fmt.Errorf("r/%s: %w", community, cr.Err)
			}
			continue
		}
		logger.Info("r/%s: %d posts, %d records -> %s", community, cr.Posts, cr.Records, cr.File)
	}

	s.finish(report)
	logger.Info("Collection complete: %d posts, %d records, %d failed communities",
		report.TotalPosts(), report.TotalRecords(), report.FailedCount())

	if s.manifest != nil {
		path, err := s.manifest.WriteManifest(report, s.settings)
		if err != nil {
			logger.Error("Could not write run manifest: %v", err)
		} else {
			report.Manifest = path
		}
	}

	return report, nil
}

// collectCommunity runs fetch, extract, build and write for one community.
// Nothing is written if fetching fails partway through.
func (s *CollectService) collectCommunity(ctx context.Context, community string) domain.CommunityReport {
	started := s.now()
	cr := domain.CommunityReport{Community: community}

	var records []domain.Record
	for post, err := range s.fetcher.Posts(ctx, community, s.settings.Window, s.settings.PostsPerCommunity) {
		if err != nil {
			cr.Err = fmt.Errorf("fetch posts: %w", err)
			cr.Duration = s.now().Sub(started)
			return cr
		}
		if post.Community == "" {
			post.Community = community
		}

		comments, err := s.extractor.Comments(ctx, post, s.settings.CommentsPerPost)
		if err != nil {
			cr.Err = fmt.Errorf("fetch comments for %s: %w", post.ID, err)
			cr.Duration = s.now().Sub(started)
			return cr
		}

		cr.Posts++
		records = append(records, domain.BuildRecords(post, comments)...)
		logger.Debug("r/%s: post %s with %d comments", community, post.ID, len(comments))
	}

	path, err := s.records.Write(community, s.settings.Window, records)
	if err != nil {
		cr.Err = err
		cr.Duration = s.now().Sub(started)
		return cr
	}

	cr.Records = len(records)
	cr.File = path
	cr.Duration = s.now().Sub(started)
	return cr
}

func (s *CollectService) finish(report *domain.RunReport) *domain.RunReport {
	report.FinishedAt = s.now()
	return report
}
