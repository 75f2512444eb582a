// Package wait synchronizes with asynchronous page state by bounded polling.
package wait

import (
	"context"
	"fmt"
	"time"

	"browser-pom/internal/domain/entity"
)

const (
	DefaultInterval = 100 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// Condition is one polled predicate. A non-nil error from Check counts as "not yet"
// and is reported as the last error if the wait times out.
type Condition struct {
	Description string
	Check       func(ctx context.Context) (bool, error)
}

type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
}

func NewPoller(interval, timeout time.Duration) Poller {
	return Poller{Interval: interval, Timeout: timeout}
}

type Option func(*Poller)

// WithTimeout overrides the poller timeout for one call. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.Timeout = d
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.Interval = d
		}
	}
}

func (p Poller) with(opts []Option) Poller {
	cfg := p
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// PollUntil checks cond until it holds, the timeout elapses or ctx is done. Checks run
// strictly one after another; a condition that holds on the first check returns without
// sleeping. On timeout it returns *entity.WaitTimeoutError no earlier than the timeout and
// no later than one interval after it, check duration aside.
func (p Poller) PollUntil(ctx context.Context, cond Condition, opts ...Option) error {
	cfg := p.with(opts)

	start := time.Now()
	deadline := start.Add(cfg.Timeout)

	var lastErr error
	for {
		ok, err := cond.Check(ctx)
		if ok {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return &entity.WaitTimeoutError{
				Condition: cond.Description,
				Timeout:   cfg.Timeout,
				Elapsed:   time.Since(start),
				LastErr:   lastErr,
			}
		}

		timer := time.NewTimer(min(cfg.Interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("waiting for %s: %w", cond.Description, ctx.Err())
		case <-timer.C:
		}
	}
}

// Satisfied is the non-failing form of PollUntil.
func (p Poller) Satisfied(ctx context.Context, cond Condition, opts ...Option) bool {
	return p.PollUntil(ctx, cond, opts...) == nil
}
