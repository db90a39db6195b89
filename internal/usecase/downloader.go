// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/naka-gawa/contrib-report/internal/gateway"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Downloader fetches a ReportBundle from GitHub.
type Downloader struct {
	fetcher gateway.Fetcher
	pacing  Pacing
	out     io.Writer
	logger  *zap.Logger
	now     func() time.Time
}

// NewDownloader creates a new Downloader. Progress lines are written to out.
func NewDownloader(fetcher gateway.Fetcher, pacing Pacing, out io.Writer, logger *zap.Logger) *Downloader {
	if pacing.Sleep == nil {
		pacing.Sleep = SleepContext
	}
	return &Downloader{
		fetcher: fetcher,
		pacing:  pacing,
		out:     out,
		logger:  logger,
		now:     time.Now,
	}
}

// Download fetches the team, the pull requests merged in the month and the
// activity of every team member.
func (d *Downloader) Download(ctx context.Context, repo string, dr domain.DateRange) (domain.ReportBundle, error) {
	d.logger.Debug("starting download", zap.String("repo", repo), zap.String("range", dr.Filter))

	var team []string
	var prs []domain.PullRequest

	// The roster comes from the core API, so it does not compete with the search limit.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		team, err = d.fetcher.ListContributors(egCtx, repo)
		return err
	})
	eg.Go(func() error {
		var err error
		prs, err = d.fetcher.SearchPullRequests(egCtx, MergedQuery(repo, dr.Filter))
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.ReportBundle{}, err
	}
	d.logger.Debug("fetched team and pull requests", zap.Int("team", len(team)), zap.Int("pull_requests", len(prs)))

	if err := d.pacing.Sleep(ctx, d.pacing.Initial); err != nil {
		return domain.ReportBundle{}, err
	}

	activity := make(map[string]domain.ActivityRecord, len(team))
	for _, member := range team {
		record, err := FetchActivity(ctx, d.fetcher, repo, member, dr.Filter)
		if err != nil {
			return domain.ReportBundle{}, err
		}
		activity[member] = record
		fmt.Fprintf(d.out, "%s, committed %d, reviewed %d\n", pterm.FgBlue.Sprint(member), len(record.Authored), len(record.Reviewed))

		if err := d.pacing.Sleep(ctx, d.pacing.PerContributor); err != nil {
			return domain.ReportBundle{}, err
		}
	}

	return domain.ReportBundle{
		Repo:         repo,
		Year:         dr.FirstDay.Year(),
		Month:        int(dr.FirstDay.Month()),
		FetchedAt:    d.now().UTC(),
		PullRequests: prs,
		Activity:     activity,
		Team:         team,
	}, nil
}
