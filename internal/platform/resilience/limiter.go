package resilience

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

// Limiter runs a batch of tasks on a bounded worker pool. Failures, including
// panics, are captured per task so one bad item never stops the others.
type Limiter struct {
	workers  int
	minDelay time.Duration
	maxDelay time.Duration
	delay    func(min, max time.Duration) time.Duration
}

func NewLimiter(cfg LimiterConfig) *Limiter {
	cfg = NormalizeLimiterConfig(cfg)
	return &Limiter{
		workers:  cfg.Workers,
		minDelay: cfg.MinDelay,
		maxDelay: cfg.MaxDelay,
		delay:    randomDelay,
	}
}

func (l *Limiter) Workers() int {
	return l.workers
}

// Run executes task for every index in [0, n) and returns one error slot per
// index. It returns only after every task has settled.
func (l *Limiter) Run(ctx context.Context, n int, task func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n <= 0 {
		return errs
	}

	pool, err := ants.NewPool(min(l.workers, n))
	if err != nil {
		for i := range errs {
			errs[i] = fmt.Errorf("create worker pool: %w", err)
		}
		return errs
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			errs[i] = l.dispatch(ctx, i, task)
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	return errs
}

func (l *Limiter) dispatch(ctx context.Context, i int, task func(ctx context.Context, i int) error) error {
	if err := sleepContext(ctx, l.delay(l.minDelay, l.maxDelay)); err != nil {
		return err
	}

	var taskErr error
	var catcher panics.Catcher
	catcher.Try(func() {
		taskErr = task(ctx, i)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return taskErr
}

func randomDelay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
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
