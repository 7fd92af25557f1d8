// Package scheduler provides the single-goroutine loop every UI callback
// runs on. Timers and posted tasks never execute concurrently with each
// other, so the state they touch needs no locking.
package scheduler

import (
	"context"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether this call
	// stopped it; false means it already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks on a single goroutine.
//
// AfterFunc and Timer.Stop must be called from the loop goroutine. Post is
// safe to call from any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Post(fn func())
}

// Loop is the real-time Scheduler.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// NewLoop returns a Loop whose task queue holds up to buffer pending tasks.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues fn to run on the loop. Posts after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			// The timer may have been stopped after it fired but before the
			// loop picked up this task.
			if lt.stopped {
				return
			}
			lt.fired = true
			fn()
		})
	})
	return lt
}

// Run executes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

type loopTimer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

func (lt *loopTimer) Stop() bool {
	if lt.stopped || lt.fired {
		return false
	}
	lt.stopped = true
	lt.t.Stop()
	return true
}
