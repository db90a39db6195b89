package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/naka-gawa/contrib-report/internal/cache"
	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/naka-gawa/contrib-report/internal/render"
	"github.com/naka-gawa/contrib-report/internal/tagging"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// Request describes one report run.
type Request struct {
	Year       int
	Month      int
	OutputPath string
	// Clean removes the cached bundle before the run so that it is fetched again.
	Clean bool
}

// Result is what a run produced.
type Result struct {
	Bundle    domain.ReportBundle
	FromCache bool
	Fields    map[string]string
}

// Reporter is the use case that builds the monthly report.
// It turns a cached or freshly downloaded bundle into the rendered report.
type Reporter struct {
	repo       string
	downloader *Downloader
	store      cache.Store
	bucketer   tagging.Bucketer
	renderer   *render.Renderer
	out        io.Writer
	logger     *zap.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(repo string, downloader *Downloader, store cache.Store, bucketer tagging.Bucketer, renderer *render.Renderer, out io.Writer, logger *zap.Logger) *Reporter {
	return &Reporter{
		repo:       repo,
		downloader: downloader,
		store:      store,
		bucketer:   bucketer,
		renderer:   renderer,
		out:        out,
		logger:     logger,
	}
}

// Run performs the main business logic.
func (r *Reporter) Run(ctx context.Context, req Request) (*Result, error) {
	dr, err := domain.NewDateRange(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	if req.Clean {
		if err := r.store.Clear(ctx); err != nil {
			return nil, err
		}
	}

	bundle, fromCache, err := r.bundle(ctx, dr)
	if err != nil {
		return nil, err
	}

	authors := Rank(bundle.Team, bundle.Activity, Authored)
	reviewers := Rank(bundle.Team, bundle.Activity, Reviewed)
	PrintDetails(r.out, authors, bundle.Activity, Authored)
	PrintDetails(r.out, reviewers, bundle.Activity, Reviewed)

	authorStats, err := Summarize(authors)
	if err != nil {
		return nil, err
	}
	reviewerStats, err := Summarize(reviewers)
	if err != nil {
		return nil, err
	}

	buckets := r.bucketer.Bucket(bundle.PullRequests)
	r.logger.Debug("bucketed pull requests", zap.Strings("buckets", buckets.Names()))

	fields := map[string]string{
		"month":     strconv.Itoa(req.Month),
		"year":      strconv.Itoa(req.Year),
		"authors":   FormatRanking(authors),
		"reviewers": FormatRanking(reviewers),
		"prs":       render.FormatBuckets(buckets),
		"summary":   FormatSummary(authorStats, reviewerStats),
	}
	if err := r.renderer.Render(req.OutputPath, fields); err != nil {
		return nil, err
	}
	r.logger.Debug("report written", zap.String("path", req.OutputPath))

	return &Result{Bundle: bundle, FromCache: fromCache, Fields: fields}, nil
}

// bundle returns the cached bundle if there is one, otherwise downloads and caches it.
// The cache is not keyed by month: a bundle for another month is reused with a warning.
func (r *Reporter) bundle(ctx context.Context, dr domain.DateRange) (domain.ReportBundle, bool, error) {
	bundle, ok, err := r.store.Load(ctx)
	if err != nil {
		return domain.ReportBundle{}, false, err
	}
	if ok {
		if !bundle.Matches(dr) {
			fmt.Fprintln(r.out, pterm.Warning.Sprintf("cached data is for %d/%d, not %d/%d; run with --clean to fetch it again",
				bundle.Month, bundle.Year, int(dr.FirstDay.Month()), dr.FirstDay.Year()))
		}
		return bundle, true, nil
	}

	bundle, err = r.downloader.Download(ctx, r.repo, dr)
	if err != nil {
		return domain.ReportBundle{}, false, err
	}
	fmt.Fprintln(r.out, pterm.FgGreen.Sprint("Caching the results from GitHub ..."))
	if err := r.store.Store(ctx, bundle); err != nil {
		return domain.ReportBundle{}, false, err
	}
	fmt.Fprintln(r.out, pterm.FgGreen.Sprint("Cached!"))
	return bundle, false, nil
}
