// Package clock provides the injected time source used across the risk
// path. Production code runs on LiveClock; tests drive a TestClock so
// throttler windows and timestamps are fully deterministic.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock supplies nanosecond timestamps and named one-shot timers.
type Clock interface {
	// TimestampNs returns the current time as nanoseconds since the
	// Unix epoch.
	TimestampNs() int64

	// SetTimer registers fn to fire at fireAtNs. Re-registering an
	// existing name replaces the prior timer.
	SetTimer(name string, fireAtNs int64, fn func())

	// CancelTimer removes a pending timer; unknown names are ignored.
	CancelTimer(name string)

	// TimerNames returns the names of all pending timers.
	TimerNames() []string
}

// LiveClock is a Clock over the system wall clock.
type LiveClock struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewLiveClock creates a LiveClock.
func NewLiveClock() *LiveClock {
	return &LiveClock{timers: make(map[string]*time.Timer)}
}

func (c *LiveClock) TimestampNs() int64 {
	return time.Now().UnixNano()
}

func (c *LiveClock) SetTimer(name string, fireAtNs int64, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[name]; ok {
		t.Stop()
	}
	delay := time.Duration(fireAtNs - c.TimestampNs())
	if delay < 0 {
		delay = 0
	}
	c.timers[name] = time.AfterFunc(delay, func() {
		c.mu.Lock()
		delete(c.timers, name)
		c.mu.Unlock()
		fn()
	})
}

func (c *LiveClock) CancelTimer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[name]; ok {
		t.Stop()
		delete(c.timers, name)
	}
}

func (c *LiveClock) TimerNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.timers))
	for name := range c.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type testTimer struct {
	name     string
	fireAtNs int64
	fn       func()
}

// TestClock is a manually advanced Clock. Advancing time fires any due
// timers in chronological order, which is how tests replay a
// throttler's buffered messages.
type TestClock struct {
	nowNs  int64
	timers map[string]*testTimer
}

// NewTestClock creates a TestClock starting at the Unix epoch.
func NewTestClock() *TestClock {
	return &TestClock{timers: make(map[string]*testTimer)}
}

func (c *TestClock) TimestampNs() int64 { return c.nowNs }

// SetTime moves the clock to nowNs without firing timers.
func (c *TestClock) SetTime(nowNs int64) { c.nowNs = nowNs }

// Advance moves the clock forward by deltaNs, firing due timers in
// order of their scheduled time.
func (c *TestClock) Advance(deltaNs int64) {
	c.AdvanceTo(c.nowNs + deltaNs)
}

// AdvanceTo moves the clock to toNs, firing due timers in order of
// their scheduled time. Callbacks may schedule further timers; those
// are honored within the same advance when due.
func (c *TestClock) AdvanceTo(toNs int64) {
	for {
		next := c.nextDue(toNs)
		if next == nil {
			break
		}
		c.nowNs = next.fireAtNs
		delete(c.timers, next.name)
		next.fn()
	}
	c.nowNs = toNs
}

func (c *TestClock) nextDue(toNs int64) *testTimer {
	var due *testTimer
	for _, t := range c.timers {
		if t.fireAtNs > toNs {
			continue
		}
		if due == nil || t.fireAtNs < due.fireAtNs || (t.fireAtNs == due.fireAtNs && t.name < due.name) {
			due = t
		}
	}
	return due
}

func (c *TestClock) SetTimer(name string, fireAtNs int64, fn func()) {
	c.timers[name] = &testTimer{name: name, fireAtNs: fireAtNs, fn: fn}
}

func (c *TestClock) CancelTimer(name string) {
	delete(c.timers, name)
}

func (c *TestClock) TimerNames() []string {
	names := make([]string, 0, len(c.timers))
	for name := range c.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
