// Package app is the interactive picker: the timeline component inside a
// frame with an optional event log below it.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/timeband/pkg/logging"
	core "tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/tui/components/eventviewer"
	tlview "tableflip.dev/timeband/pkg/tui/components/timeline"
	"tableflip.dev/timeband/pkg/tui/events"
	"tableflip.dev/timeband/pkg/tui/theme"
)

// ComponentID is the id of the picker's timeline.
const ComponentID events.ComponentID = "timeline"

const (
	minFrameWidth  = 20
	minEventHeight = 5
	maxEventHeight = 12
	frameGap       = 1
)

// Options configures the picker.
type Options struct {
	Timeline core.Options
	// Width caps the frame width unless Full is set.
	Width int
	Full  bool
	// Events shows the event log pane.
	Events bool
	Theme  *theme.Theme
}

// Result is what the picker returns when it exits.
type Result struct {
	Range     core.Range
	Cancelled bool
}

// Model is the root Bubble Tea model.
type Model struct {
	opts     Options
	theme    theme.Theme
	timeline *tlview.Model
	events   *eventviewer.Model

	termWidth  int
	termHeight int

	frameWidth  int
	frameOffset int
	eventHeight int
	layoutDirty bool

	result Result
}

// New builds the picker model.
func New(opts Options) (*Model, error) {
	th := theme.Detect()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	tl, err := tlview.New(ComponentID, opts.Timeline, th)
	if err != nil {
		return nil, err
	}
	m := &Model{
		opts:        opts,
		theme:       th,
		timeline:    tl,
		layoutDirty: true,
	}
	if opts.Events {
		m.events = eventviewer.NewModel(400, opts.Timeline.Clock)
	}
	return m, nil
}

// Run starts the picker on the terminal and blocks until the user quits.
func Run(ctx context.Context, opts Options) (Result, error) {
	m, err := New(opts)
	if err != nil {
		return Result{}, err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return Result{}, err
	}
	return m.Result(), nil
}

// Result returns the selection at exit.
func (m *Model) Result() Result { return m.result }

// Timeline exposes the timeline component.
func (m *Model) Timeline() *tlview.Model { return m.timeline }

// Events exposes the event log, nil when disabled.
func (m *Model) Events() *eventviewer.Model { return m.events }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.timeline.Init(), m.timeline.Focus())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.recordEvent(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layoutDirty = true
		m.ensureLayout()
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit(true)
		case "q":
			if !m.timeline.Typing() {
				return m.quit(false)
			}
		}
	case events.SelectionChangeMsg:
		logging.Debug("selection", "detail", msg.Describe())
	}

	var cmds []tea.Cmd
	if _, cmd := m.timeline.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.events != nil {
		if _, cmd := m.events.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) quit(cancelled bool) (tea.Model, tea.Cmd) {
	m.result = Result{
		Range:     m.timeline.Controller().SelectedRange(),
		Cancelled: cancelled,
	}
	m.timeline.Close()
	return m, tea.Quit
}

// View implements tea.ViewModel.
func (m *Model) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…"
	}
	m.ensureLayout()

	style := m.theme.Panel.Frame
	if m.timeline.Focused() {
		style = m.theme.Panel.FrameFocused
	}
	frame := style.Width(m.frameWidth).Render(m.timeline.View())
	block := lipgloss.PlaceHorizontal(m.termWidth, lipgloss.Center, frame)

	if m.events != nil && m.eventHeight > 0 {
		block = lipgloss.JoinVertical(lipgloss.Left, block, "", m.events.View())
	}
	return block
}

func (m *Model) ensureLayout() {
	if m.termWidth == 0 || m.termHeight == 0 || !m.layoutDirty {
		return
	}
	width := m.termWidth
	if !m.opts.Full && m.opts.Width > 0 {
		width = clamp(m.opts.Width, minFrameWidth, m.termWidth)
	}
	m.frameWidth = width
	m.frameOffset = (m.termWidth - width) / 2

	inner := max(1, width-m.theme.Panel.Frame.GetHorizontalFrameSize())
	m.timeline.SetSize(inner, 0)
	m.timeline.SetOrigin(m.frameOffset+1, 1)

	m.eventHeight = m.computeEventHeight()
	if m.events != nil && m.eventHeight > 0 {
		m.events.SetSize(m.termWidth, m.eventHeight)
	}
	m.layoutDirty = false
}

func (m *Model) computeEventHeight() int {
	if m.events == nil {
		return 0
	}
	frameHeight := m.timeline.Height() + 2
	available := m.termHeight - frameHeight - frameGap
	if available < minEventHeight {
		return 0
	}
	return clamp(available, minEventHeight, maxEventHeight)
}

func (m *Model) recordEvent(msg tea.Msg) {
	if m.events == nil {
		return
	}
	if _, ok := msg.(tlview.TickMsg); ok {
		return
	}
	m.events.Record(msg)
}

func clamp(value, min, max int) int {
	if max <= 0 {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
