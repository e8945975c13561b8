// SPDX-License-Identifier: MIT
package publish

import (
	"context"
	"time"
)

// Scheduler republishes on a fixed interval while the server runs
type Scheduler struct {
	Publisher *Publisher
	Interval  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler; Start must be called to begin
func NewScheduler(p *Publisher, interval time.Duration) *Scheduler {
	return &Scheduler{Publisher: p, Interval: interval}
}

// Start publishes once immediately and then on every tick. The returned
// channel is closed after Stop once the current run has finished.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		s.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()

	return s.done
}

// Stop cancels the schedule and any in-flight run
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	// Run logs its own failures
	_, _ = s.Publisher.Run(ctx)
}
