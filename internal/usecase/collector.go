package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
)

const defaultCollectConcurrency = 8

// Collector is the use case that gathers the extended repository dataset of an
// organization. It orchestrates the listing and the per-repository activity fetches.
type Collector struct {
	fetcher     gateway.Fetcher
	logger      *zap.Logger
	concurrency int
}

// NewCollector creates a new Collector instance. A concurrency below one falls back to
// the default limit of parallel activity fetches.
func NewCollector(fetcher gateway.Fetcher, logger *zap.Logger, concurrency int) *Collector {
	if concurrency < 1 {
		concurrency = defaultCollectConcurrency
	}
	return &Collector{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Collect lists the repositories of org and fills in their pull request and commit
// totals concurrently. The result is sorted by repository name. The first failing fetch
// cancels the rest and is returned.
func (c *Collector) Collect(ctx context.Context, org string) ([]domain.Repository, error) {
	c.logger.Info("collector: starting", zap.String("org", org))

	repos, err := c.fetcher.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i := range repos {
		repo := &repos[i]
		eg.Go(func() error {
			activity, err := c.fetcher.FetchActivity(egCtx, org, repo.Name)
			if err != nil {
				return fmt.Errorf("failed to fetch activity for %s: %w", repo.Name, err)
			}
			repo.PullRequests = activity.PullRequests
			repo.Commits = activity.Commits
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].Name < repos[j].Name
	})

	c.logger.Info("collector: complete", zap.Int("repositories", len(repos)))
	return repos, nil
}
