package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/naka-gawa/contrib-report/internal/gateway"
)

// FetchActivity collects what login authored and reviewed in repo within dateFilter.
// Errors from the gateway are returned as they are; nothing is retried.
func FetchActivity(ctx context.Context, fetcher gateway.Fetcher, repo, login, dateFilter string) (domain.ActivityRecord, error) {
	authored, err := fetcher.SearchPullRequests(ctx, AuthorQuery(repo, login, dateFilter))
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("failed to fetch pull requests authored by %s: %w", login, err)
	}
	commented, err := fetcher.SearchPullRequests(ctx, CommenterQuery(repo, login, dateFilter))
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("failed to fetch pull requests commented on by %s: %w", login, err)
	}
	return domain.NewActivityRecord(formatAll(authored), formatAll(commented)), nil
}

func formatAll(prs []domain.PullRequest) []string {
	out := make([]string, len(prs))
	for i, pr := range prs {
		out[i] = domain.FormatActivity(pr)
	}
	return out
}
