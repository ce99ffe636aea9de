// Package loop provides the single-threaded GUI event loop the scrolling
// core runs on, deterministic scheduling for tests, and the restartable
// single-shot Timer.
//
// Every callback scheduled through a Scheduler runs on the loop goroutine,
// so the code it calls never needs locks.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Run after Stop.
var ErrStopped = errors.New("loop stopped")

// Cancel stops a scheduled callback. It reports whether the callback was
// still pending.
type Cancel func() bool

// Scheduler runs callbacks on the GUI goroutine.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// AfterFunc runs f on the GUI goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Cancel
}

// Loop is a real-time Scheduler backed by a goroutine running Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop whose queue holds up to size pending callbacks.
func New(size int) *Loop {
	if size <= 0 {
		size = 256
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues f to run on the loop goroutine. It is safe to call from any
// goroutine and reports false once the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, f func()) Cancel {
	var mu sync.Mutex
	cancelled := false
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			mu.Lock()
			skip := cancelled
			mu.Unlock()
			if !skip {
				f()
			}
		})
	})
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		pending := !cancelled
		cancelled = true
		return t.Stop() && pending
	}
}

// Run processes callbacks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrStopped
		case f := <-l.queue:
			f()
		}
	}
}

// Stop makes Run return. It is safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}
