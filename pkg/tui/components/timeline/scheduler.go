package timeline

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/tui/events"
)

// TickMsg delivers a scheduled continuation back to its component.
type TickMsg struct {
	Component events.ComponentID
	ID        int
}

// Scheduler implements clock.Scheduler on top of tea.Tick so continuations
// run inside Update, on the program's loop.
type Scheduler struct {
	owner  events.ComponentID
	next   int
	timers map[int]func()
	cmds   []tea.Cmd
}

type tickTimer struct {
	s  *Scheduler
	id int
}

func (t tickTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// NewScheduler returns a scheduler whose ticks are addressed to owner.
func NewScheduler(owner events.ComponentID) *Scheduler {
	return &Scheduler{owner: owner, timers: map[int]func(){}}
}

// AfterFunc implements clock.Scheduler. The tick command is collected by
// Drain.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	s.next++
	id := s.next
	s.timers[id] = f
	owner := s.owner
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Component: owner, ID: id}
	}))
	return tickTimer{s: s, id: id}
}

// Fire runs the continuation for id. Stopped or unknown ids report false.
func (s *Scheduler) Fire(id int) bool {
	f, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	f()
	return true
}

// Pending returns the number of continuations waiting for their tick.
func (s *Scheduler) Pending() int { return len(s.timers) }

// Drain returns and forgets the tick commands scheduled since the last call.
func (s *Scheduler) Drain() []tea.Cmd {
	cmds := s.cmds
	s.cmds = nil
	return cmds
}
