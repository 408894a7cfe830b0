// Package clock provides the time seams used by the timeline: a Clock for
// reading the current instant and a Scheduler for deferred continuations.
// Hosts choose how continuations run; none of the implementations here start
// goroutines, so callbacks always execute on the caller's loop.
package clock

import (
	"sort"
	"time"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Timer is a pending continuation.
type Timer interface {
	// Stop prevents the continuation from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Scheduler runs f once d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real reads the wall clock.
type Real struct{}

// Now implements Clock.
func (Real) Now() time.Time { return time.Now() }

// Inline runs every continuation immediately, ignoring the delay. A
// continuation scheduled while another one is running is queued and runs
// after it returns, so callers never observe re-entrant callbacks.
type Inline struct {
	running bool
	queue   []*inlineTimer
}

type inlineTimer struct {
	f       func()
	stopped bool
}

func (t *inlineTimer) Stop() bool {
	if t.stopped || t.f == nil {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements Scheduler.
func (s *Inline) AfterFunc(_ time.Duration, f func()) Timer {
	t := &inlineTimer{f: f}
	s.queue = append(s.queue, t)
	if s.running {
		return t
	}
	s.running = true
	defer func() { s.running = false }()
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if next.stopped {
			continue
		}
		fn := next.f
		next.f = nil
		fn()
	}
	return t
}

// Manual is a hand-driven Clock and Scheduler for tests and replay. Time only
// moves when Advance or Set is called.
type Manual struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	due     time.Time
	seq     int
	f       func()
	owner   *Manual
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.owner.remove(t)
	return true
}

// NewManual returns a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Clock.
func (m *Manual) Now() time.Time { return m.now }

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{due: m.now.Add(d), seq: m.seq, f: f, owner: m}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of timers that have not fired.
func (m *Manual) Pending() int { return len(m.timers) }

// Advance moves the clock forward by d, firing due timers in order. Timers
// scheduled by a callback fire in the same call when they fall due inside
// the window.
func (m *Manual) Advance(d time.Duration) {
	m.Set(m.now.Add(d))
}

// Set moves the clock to t, firing due timers in order.
func (m *Manual) Set(t time.Time) {
	for {
		next := m.nextDue(t)
		if next == nil {
			break
		}
		m.remove(next)
		if next.due.After(m.now) {
			m.now = next.due
		}
		next.fired = true
		next.f()
	}
	if t.After(m.now) {
		m.now = t
	}
}

func (m *Manual) nextDue(limit time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
	if m.timers[0].due.After(limit) {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
