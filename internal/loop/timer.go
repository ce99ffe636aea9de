package loop

import "time"

// Timer is a restartable single-shot timer. Start while active restarts
// the countdown.
type Timer struct {
	sched    Scheduler
	interval time.Duration
	timeout  func()
	cancel   Cancel
	active   bool
}

// NewTimer creates an inactive timer calling timeout after interval.
func NewTimer(s Scheduler, interval time.Duration, timeout func()) *Timer {
	return &Timer{sched: s, interval: interval, timeout: timeout}
}

// Interval returns the countdown length.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// SetInterval changes the countdown length used by the next Start.
func (t *Timer) SetInterval(d time.Duration) {
	t.interval = d
}

// Start (re)starts the countdown.
func (t *Timer) Start() {
	t.Stop()
	t.active = true
	fire := func() {
		if !t.active {
			return
		}
		t.active = false
		t.cancel = nil
		if t.timeout != nil {
			t.timeout()
		}
	}
	t.cancel = t.sched.AfterFunc(t.interval, fire)
}

// Stop cancels a pending timeout.
func (t *Timer) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.active = false
}

// IsActive reports whether a timeout is pending.
func (t *Timer) IsActive() bool {
	return t.active
}
