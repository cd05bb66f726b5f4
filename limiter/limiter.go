package limiter

import (
	"context"
	"sync"
	"time"
)

// New returns a Limiter that spaces permitted calls at least `interval`
// apart, measured start to start, across every goroutine that waits on it.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Limiter throttles the aggregate call rate of a group of workers. Each
// caller reserves the next free slot under the mutex and then sleeps outside
// it, so concurrent waiters queue up without blocking each other's
// reservations.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	nextAt   time.Time
}

// Wait blocks until the caller's reserved slot arrives, or until ctx is
// canceled. The slot is consumed either way: admission order is
// first-reserved-wins, with no fairness guarantee beyond eventual admission.
func (lim *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lim.mu.Lock()
	now := time.Now()
	if lim.nextAt.Before(now) {
		lim.nextAt = now
	}
	turn := lim.nextAt
	lim.nextAt = turn.Add(lim.interval)
	lim.mu.Unlock()

	dur := time.Until(turn)
	if dur <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(dur):
		return nil
	}
}
