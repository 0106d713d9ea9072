package plexwebsocket

import (
	"context"
	"time"
)

// retrier determines the delay between successive connection attempts: exponential
// backoff, doubling on each consecutive failure up to max. reset() restores the delay to
// its initial value; the listener calls it whenever a connection is established.
type retrier struct {
	initial  time.Duration
	max      time.Duration
	interval time.Duration
}

func newRetrier(initial, max time.Duration) *retrier {
	return &retrier{initial: initial, max: max, interval: initial}
}

func (r *retrier) reset() {
	r.interval = r.initial
}

// next returns the current delay and doubles it, capped at max.
func (r *retrier) next() time.Duration {
	interval := r.interval
	r.interval *= 2
	if r.interval > r.max {
		r.interval = r.max
	}
	return interval
}

// wait sleeps for the current backoff delay. It returns false if ctx was cancelled
// before the delay elapsed.
func (r *retrier) wait(ctx context.Context) bool {
	timer := time.NewTimer(r.next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
