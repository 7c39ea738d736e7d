package throttle_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-kurosawa/ahasync/pkg/utils/throttle"
	"github.com/m-mizutani/gt"
)

func TestWait_SleepsConfiguredInterval(t *testing.T) {
	ctx := context.Background()

	var slept []time.Duration
	th := throttle.New(150*time.Millisecond, throttle.WithSleeper(func(_ context.Context, d time.Duration) {
		slept = append(slept, d)
	}))

	th.Wait(ctx)
	th.Wait(ctx)

	gt.Array(t, slept).Equal([]time.Duration{150 * time.Millisecond, 150 * time.Millisecond})
}

func TestWait_ZeroIntervalDisabled(t *testing.T) {
	ctx := context.Background()

	var calls int
	th := throttle.New(0, throttle.WithSleeper(func(_ context.Context, _ time.Duration) {
		calls++
	}))

	th.Wait(ctx)
	gt.Number(t, calls).Equal(0)
}

func TestWait_NilThrottleNoop(t *testing.T) {
	var th *throttle.Throttle
	th.Wait(context.Background())
}

func TestWait_CancelledContextReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	th := throttle.New(time.Hour)

	done := make(chan struct{})
	go func() {
		th.Wait(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return on cancelled context")
	}
}
