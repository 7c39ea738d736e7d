// Package throttle provides fixed-delay pacing for outbound API calls.
// Both external APIs enforce per-second request ceilings; a simple
// sleep after every call keeps the strictly sequential engine under
// them without adaptive backoff.
package throttle

import (
	"context"
	"time"
)

// Throttle inserts a fixed delay between successive calls
type Throttle struct {
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration)
}

// Option configures a Throttle
type Option func(*Throttle)

// WithSleeper replaces the sleep function. Used by tests to observe
// pacing without waiting.
func WithSleeper(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(t *Throttle) {
		t.sleep = sleep
	}
}

// New creates a Throttle with the given inter-call interval. A zero
// or negative interval disables pacing.
func New(interval time.Duration, opts ...Option) *Throttle {
	t := &Throttle{
		interval: interval,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Wait blocks for the configured interval or until ctx is done,
// whichever comes first. Safe to call on a nil Throttle.
func (t *Throttle) Wait(ctx context.Context) {
	if t == nil || t.interval <= 0 {
		return
	}
	t.sleep(ctx, t.interval)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
