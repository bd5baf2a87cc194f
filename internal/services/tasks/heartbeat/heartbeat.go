// Package heartbeat periodically logs that the backend is alive.
package heartbeat

import (
	"context"
	"log"
	"time"
)

// DefaultInterval is the fixed heartbeat rate.
const DefaultInterval = time.Minute

// Job logs a heartbeat line on every tick.
type Job struct {
	interval time.Duration
	clock    func() time.Time
	logf     func(format string, args ...any)
}

// Option customizes a Job.
type Option func(*Job)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(j *Job) {
		if clock != nil {
			j.clock = clock
		}
	}
}

// WithLogf overrides the log sink.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(j *Job) {
		if logf != nil {
			j.logf = logf
		}
	}
}

// New returns a heartbeat job. A non-positive interval selects DefaultInterval.
func New(interval time.Duration, opts ...Option) *Job {
	if interval <= 0 {
		interval = DefaultInterval
	}
	j := &Job{
		interval: interval,
		clock:    time.Now,
		logf:     log.Printf,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(j)
		}
	}
	return j
}

// Interval returns the configured tick period.
func (j *Job) Interval() time.Duration {
	return j.interval
}

// Start runs the job on its own goroutine until ctx is done.
func (j *Job) Start(ctx context.Context) {
	if j == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		j.run(ctx, ticker.C)
	}()
}

func (j *Job) run(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			j.Beat()
		}
	}
}

// Beat logs a single heartbeat line.
func (j *Job) Beat() {
	j.logf("maintenance heartbeat: backend running at %s", j.clock().Format(time.RFC3339))
}
