package crawl

import (
	"context"
	"time"
)

// Clock abstracts time so polling can run against a virtual clock.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is canceled.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d, returning ctx.Err() if the context ends first.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
