// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Activity holds the per-repository totals that the REST listing does not carry.
type Activity struct {
	PullRequests int
	Commits      int
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// ListRepositories returns every repository of org. PullRequests and Commits are left zero.
	ListRepositories(ctx context.Context, org string) ([]domain.Repository, error)
	// FetchActivity returns the pull request total and the commit count of the default branch.
	FetchActivity(ctx context.Context, owner, name string) (*Activity, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// repositoryActivityQuery fetches both totals in one round trip. An empty repository has
// no default branch and reports zero commits.
type repositoryActivityQuery struct {
	Repository struct {
		PullRequests struct {
			TotalCount int
		}
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					}
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *zap.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) ([]domain.Repository, error) {
	g.logger.Info("listing repositories", zap.String("org", org))
	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var repos []domain.Repository
	for {
		page, resp, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		for _, r := range page {
			repos = append(repos, toRepository(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("fetching next page of repositories", zap.Int("page", opts.Page))
	}
	g.logger.Info("completed listing repositories", zap.Int("count", len(repos)))
	return repos, nil
}

// toRepository maps the REST representation. Licence is the SPDX identifier; watchers is
// the watchers_count the listing reports.
func toRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		Name:            r.GetName(),
		PrimaryLanguage: r.GetLanguage(),
		Licence:         r.GetLicense().GetSPDXID(),
		Stars:           r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		Watchers:        r.GetWatchersCount(),
		CreatedAt:       r.GetCreatedAt().Time,
	}
}

func (g *GitHubGateway) FetchActivity(ctx context.Context, owner, name string) (*Activity, error) {
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	var q repositoryActivityQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for %s/%s: %w", owner, name, err)
	}
	g.logger.Debug("fetched repository activity", zap.String("repository", owner+"/"+name))
	return &Activity{
		PullRequests: q.Repository.PullRequests.TotalCount,
		Commits:      q.Repository.DefaultBranchRef.Target.Commit.History.TotalCount,
	}, nil
}
