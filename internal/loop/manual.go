package loop

import (
	"slices"
	"time"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously inside Advance, in deadline order.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	seq      uint64
	deadline time.Time
	f        func()
}

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Cancel {
	m.seq++
	t := &manualTimer{seq: m.seq, deadline: m.now.Add(d), f: f}
	m.timers = append(m.timers, t)
	return func() bool {
		n := len(m.timers)
		m.timers = slices.DeleteFunc(m.timers, func(o *manualTimer) bool { return o == t })
		return len(m.timers) != n
	}
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		m.timers = slices.DeleteFunc(m.timers, func(o *manualTimer) bool { return o == next })
		m.now = next.deadline
		next.f()
	}
	m.now = end
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) nextDue(end time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.deadline.After(end) {
			continue
		}
		if next == nil || t.deadline.Before(next.deadline) ||
			(t.deadline.Equal(next.deadline) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
