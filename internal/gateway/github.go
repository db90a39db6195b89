// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// ListContributors returns the logins of everyone with commits in repo ("owner/name"),
	// in the order GitHub lists them.
	ListContributors(ctx context.Context, repo string) ([]string, error)
	// SearchPullRequests runs an issue search query and returns the pull requests it matches.
	SearchPullRequests(ctx context.Context, query string) ([]domain.PullRequest, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// searchPullRequestsQuery pages through an issue search, keeping only pull requests.
type searchPullRequestsQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Number int
					Title  string
					URL    string
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The transport waits out GitHub's secondary rate limits for at most maxSleep per request.
func NewGitHubGateway(token string, maxSleep time.Duration, logger *zap.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(maxSleep, nil),
		github_ratelimit.WithLimitDetectedCallback(func(cbCtx *github_ratelimit.CallbackContext) {
			if cbCtx.SleepUntil != nil {
				logger.Warn("secondary rate limit detected", zap.Time("sleep_until", *cbCtx.SleepUntil))
			}
		}),
	)
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

func (g *GitHubGateway) ListContributors(ctx context.Context, repo string) ([]string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("fetching contributors using REST API", zap.String("repo", repo))
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var logins []string
	for {
		contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list contributors with REST API: %w", err)
		}
		for _, contributor := range contributors {
			if login := contributor.GetLogin(); login != "" {
				logins = append(logins, login)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("fetching next page of contributors", zap.Int("page", resp.NextPage))
	}
	g.logger.Debug("completed fetching contributors", zap.Int("count", len(logins)))
	return logins, nil
}

func (g *GitHubGateway) SearchPullRequests(ctx context.Context, query string) ([]domain.PullRequest, error) {
	variables := map[string]interface{}{"query": githubv4.String(query), "cursor": (*githubv4.String)(nil)}
	var prs []domain.PullRequest
	for {
		var q searchPullRequestsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL search %q: %w", query, err)
		}
		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "PullRequest" {
				continue
			}
			node := edge.Node.PullRequest
			prs = append(prs, domain.PullRequestRef{Number: node.Number, Title: node.Title, HTMLURL: node.URL})
		}
		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Debug("fetching next page of pull requests", zap.String("query", query))
	}
	g.logger.Debug("completed pull request search", zap.String("query", query), zap.Int("count", len(prs)))
	return prs, nil
}

func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository must be in the form owner/name: %q", repo)
	}
	return owner, name, nil
}
