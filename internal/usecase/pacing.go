package usecase

import (
	"context"
	"time"
)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the Sleeper used outside of tests.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pacing spaces out the search calls. GitHub allows about 30 searches a minute,
// so the downloader waits Initial once after the bulk search and PerContributor
// after each contributor. A rate limit error is still fatal if this is not enough.
type Pacing struct {
	Initial        time.Duration
	PerContributor time.Duration
	Sleep          Sleeper
}
