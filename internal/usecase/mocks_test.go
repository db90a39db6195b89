package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListContributors(ctx context.Context, repo string) ([]string, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFetcher) SearchPullRequests(ctx context.Context, query string) ([]domain.PullRequest, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequest), args.Error(1)
}

// memStore is an in-memory cache.Store.
type memStore struct {
	bundle   *domain.ReportBundle
	stored   int
	cleared  int
	loadErr  error
	storeErr error
}

func (s *memStore) Load(_ context.Context) (domain.ReportBundle, bool, error) {
	if s.loadErr != nil {
		return domain.ReportBundle{}, false, s.loadErr
	}
	if s.bundle == nil {
		return domain.ReportBundle{}, false, nil
	}
	return *s.bundle, true, nil
}

func (s *memStore) Store(_ context.Context, bundle domain.ReportBundle) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	s.stored++
	s.bundle = &bundle
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.cleared++
	s.bundle = nil
	return nil
}

// recordingSleeper collects the requested pauses instead of sleeping.
type recordingSleeper struct {
	pauses []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.pauses = append(r.pauses, d)
	return nil
}

func pr(number int, title string) domain.PullRequest {
	return domain.PullRequestRef{Number: number, Title: title, HTMLURL: "https://github.com/apache/tvm/pull/" + strconv.Itoa(number)}
}
