package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/mohammad-safakhou/factlens/internal/cache"
)

const (
	refreshLockKey = "trending-refresh"
	refreshLockTTL = 2 * time.Minute
	checkInterval  = time.Minute
)

// Refresher rebuilds the trending listing on a schedule so requests hit a
// warm cache. Several instances sharing a redis cache refresh only once.
type Refresher struct {
	orch     *Orchestrator
	schedule string
	locker   cache.Store
	logger   *log.Logger
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last *time.Time
	stop chan struct{}
	done chan struct{}
}

// NewRefresher validates schedule: "@hourly", "@daily" or a cron expression.
func NewRefresher(orch *Orchestrator, schedule string, locker cache.Store, logger *log.Logger) (*Refresher, error) {
	if schedule != "@hourly" && schedule != "@daily" {
		if _, err := cronexpr.Parse(schedule); err != nil {
			return nil, fmt.Errorf("refresh cron %q: %w", schedule, err)
		}
	}
	if locker == nil {
		locker = cache.Noop{}
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[SCHED] ", log.LstdFlags)
	}
	return &Refresher{
		orch:     orch,
		schedule: schedule,
		locker:   locker,
		logger:   logger,
		interval: checkInterval,
		now:      time.Now,
	}, nil
}

// Start checks the schedule every interval until Stop or ctx ends.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	stop, done := r.stop, r.done
	r.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		r.tick(ctx)
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.tick(ctx)
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop = nil
	r.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (r *Refresher) tick(ctx context.Context) {
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	now := r.now()
	if !isDue(r.schedule, last, now) {
		return
	}

	release, err := r.locker.TryLock(ctx, refreshLockKey, refreshLockTTL)
	if errors.Is(err, cache.ErrLocked) {
		return
	}
	if err != nil {
		r.logger.Printf("refresh lock: %v", err)
		return
	}
	defer release()

	r.mu.Lock()
	r.last = &now
	r.mu.Unlock()

	articles, err := r.orch.Refresh(ctx)
	if err != nil {
		r.logger.Printf("scheduled refresh failed: %v", err)
		return
	}
	r.logger.Printf("scheduled refresh cached %d articles", len(articles))
}

// isDue reports whether a job with cronSpec that last ran at last should
// run at now. It supports "@daily", "@hourly" and 5-field cron expressions.
// A job that never ran is due.
func isDue(cronSpec string, last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	switch cronSpec {
	case "@daily":
		return now.Sub(*last) >= 24*time.Hour
	case "@hourly":
		return now.Sub(*last) >= time.Hour
	}
	expr, err := cronexpr.Parse(cronSpec)
	if err != nil {
		return now.Sub(*last) >= 24*time.Hour
	}
	return !expr.Next(*last).After(now)
}
