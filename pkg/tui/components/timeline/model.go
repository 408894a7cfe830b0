// Package timeline renders the timeline controller as a Bubble Tea
// component: one header row, the item strip, a status row and key help.
package timeline

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/timeband"
	core "tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/tui/events"
	"tableflip.dev/timeband/pkg/tui/theme"
	"tableflip.dev/timeband/pkg/tui/ui"
)

// stripRow is the row of the item strip relative to the component origin.
const stripRow = 1

// Model is the timeline component. It implements core.Surface.
type Model struct {
	id    events.ComponentID
	ctrl  *core.Controller
	sched *Scheduler
	theme theme.Theme
	keys  KeyMap
	help  help.Model

	input    textinput.Model
	typing   bool
	inputErr string

	frame   core.Frame
	width   int
	originX int
	originY int
	focused bool

	hoverKey string
	hint     string
	pending  []tea.Cmd
}

var (
	_ ui.Focusable = (*Model)(nil)
	_ ui.Placed    = (*Model)(nil)
	_ core.Surface = (*Model)(nil)
)

// New builds the component and its controller. The scheduler in opts is
// replaced by one driven by tea.Tick.
func New(id events.ComponentID, opts core.Options, th theme.Theme) (*Model, error) {
	input := textinput.New()
	input.Prompt = "go to: "
	input.Placeholder = "2017-12-29, 2017-12 or 2017"
	input.CharLimit = len(timeband.LayoutDay)

	m := &Model{
		id:    id,
		theme: th,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: input,
		width: 80,
		sched: NewScheduler(id),
	}
	opts.Scheduler = m.sched
	ctrl, err := core.New(m, opts)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	for _, name := range []core.EventName{core.SelectionChange, core.GranularityChange, core.ViewChange} {
		ctrl.On(name, func(ev core.Event) {
			m.emit(events.FromTimeline(m.id, ev))
		})
	}
	return m, nil
}

// ID returns the component id used on emitted messages.
func (m *Model) ID() events.ComponentID { return m.id }

// Controller exposes the underlying controller.
func (m *Model) Controller() *core.Controller { return m.ctrl }

// Frame returns the last rendered frame.
func (m *Model) Frame() core.Frame { return m.frame }

// Width implements core.Surface.
func (m *Model) Width() int { return m.width }

// Render implements core.Surface.
func (m *Model) Render(f core.Frame) { m.frame = f }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return m.flush() }

// SetSize implements ui.Component. The height is fixed.
func (m *Model) SetSize(width, _ int) {
	if width < 1 {
		width = 1
	}
	m.width = width
	m.input.SetWidth(max(1, width-lipgloss.Width(m.input.Prompt)-1))
	m.ctrl.Resize(width)
}

// SetOrigin implements ui.Placed.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Focus implements ui.Focusable.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.hover(m.width / 2)
	return tea.Batch(events.FocusCmd(m.id), m.flush())
}

// Blur implements ui.Focusable.
func (m *Model) Blur() tea.Cmd {
	m.focused = false
	m.closeInput()
	m.ctrl.Leave()
	m.hoverKey, m.hint = "", ""
	return events.BlurCmd(m.id)
}

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// Typing reports whether the go-to prompt owns the keyboard.
func (m *Model) Typing() bool { return m.typing }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Component == m.id {
			m.sched.Fire(msg.ID)
			if !m.ctrl.Transitioning() && m.focused {
				m.hover(m.width / 2)
			}
		}
	case tea.KeyPressMsg:
		switch {
		case m.focused && m.typing:
			m.handleInput(msg)
		case m.focused:
			m.handleKey(msg)
		}
	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		if x, ok := m.local(mouse); ok {
			m.ctrl.Wheel(wheelEvent(mouse.Button), x)
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if x, ok := m.local(mouse); ok && mouse.Button == tea.MouseLeft {
			m.ctrl.ClickAt(x)
			m.hover(x)
		}
	case tea.MouseMotionMsg:
		if x, ok := m.local(msg.Mouse()); ok {
			m.hover(x)
		} else if m.hoverKey != "" && !m.focused {
			m.ctrl.Leave()
			m.hoverKey, m.hint = "", ""
		}
	}
	return m, m.flush()
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	center := m.width / 2
	step := 1
	if len(m.frame.Cells) > 0 {
		step = m.frame.Cells[0].Width
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		m.ctrl.Pan(-step)
	case key.Matches(msg, m.keys.Right):
		m.ctrl.Pan(step)
	case key.Matches(msg, m.keys.PageLeft):
		m.ctrl.Pan(-m.width / 2)
	case key.Matches(msg, m.keys.PageRight):
		m.ctrl.Pan(m.width / 2)
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.Zoom(gesture.ZoomIn, center)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.Zoom(gesture.ZoomOut, center)
	case key.Matches(msg, m.keys.Select):
		m.ctrl.ClickAt(center)
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.ClearSelection()
	case key.Matches(msg, m.keys.Today):
		_ = m.ctrl.SetGranularity(m.ctrl.Granularity(), m.ctrl.Today())
	case key.Matches(msg, m.keys.Mode):
		m.ctrl.SetMode(nextMode(m.ctrl.Mode()))
	case key.Matches(msg, m.keys.Goto):
		m.openInput()
		return
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return
	default:
		return
	}
	m.hover(center)
}

func (m *Model) openInput() {
	m.typing = true
	m.inputErr = ""
	m.input.SetValue("")
	if cmd := m.input.Focus(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) closeInput() {
	m.typing = false
	m.inputErr = ""
	m.input.Blur()
}

// handleInput feeds the go-to prompt. Enter centres the timeline on the
// typed period at its own granularity.
func (m *Model) handleInput(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc":
		m.closeInput()
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		d, g, err := timeband.ParseDate(value)
		if err != nil {
			m.inputErr = "not a date"
			return
		}
		m.closeInput()
		_ = m.ctrl.SetGranularity(g, d)
		m.hover(m.width / 2)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.inputErr = ""
		if cmd != nil {
			m.pending = append(m.pending, cmd)
		}
	}
}

// hover moves the pointer to column x and emits a HoverMsg when the hint
// changed.
func (m *Model) hover(x int) {
	hint := m.ctrl.HoverAt(x)
	var key string
	for _, cell := range m.frame.Cells {
		if cell.Hovered {
			key = cell.Item.Key()
		}
	}
	if key == m.hoverKey && hint == m.hint {
		return
	}
	m.hoverKey, m.hint = key, hint
	if key != "" {
		m.pending = append(m.pending, events.HoverCmd(m.id, key, hint))
	}
}

// local maps a terminal mouse position to a strip column.
func (m *Model) local(mouse tea.Mouse) (int, bool) {
	x := mouse.X - m.originX
	if mouse.Y-m.originY != stripRow || x < 0 || x >= m.width {
		return 0, false
	}
	return x, true
}

func (m *Model) emit(msg tea.Msg) {
	m.pending = append(m.pending, func() tea.Msg { return msg })
}

func (m *Model) flush() tea.Cmd {
	cmds := append(m.pending, m.sched.Drain()...)
	m.pending = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// View implements ui.Component.
func (m *Model) View() string {
	th := m.theme.Timeline
	rows := []string{
		renderHeader(m.frame, m.ctrl.Mode(), th),
		renderStrip(m.frame, m.width, th),
		m.status(),
	}
	rows = append(rows, strings.Split(m.help.View(m.keys), "\n")...)
	for i, row := range rows {
		if i >= 3 {
			row = m.theme.Footer.Help.Render(row)
		}
		if lipgloss.Width(row) > m.width {
			row = truncate.StringWithTail(row, uint(m.width), "…")
		}
		rows[i] = row
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) status() string {
	if !m.typing {
		return renderStatus(m.frame, m.theme.Timeline)
	}
	row := m.input.View()
	if m.inputErr != "" {
		row += " " + m.theme.Timeline.Hint.Render(m.inputErr)
	}
	return row
}

// Height is the number of rows View draws.
func (m *Model) Height() int {
	return 3 + strings.Count(m.help.View(m.keys), "\n") + 1
}

// Close stops pending transitions and drops subscribers.
func (m *Model) Close() { m.ctrl.Destroy() }

// wheelEvent converts a terminal wheel notch into a line-mode wheel sample.
func wheelEvent(button tea.MouseButton) gesture.WheelEvent {
	ev := gesture.WheelEvent{Mode: gesture.DeltaLine}
	switch button {
	case tea.MouseWheelUp:
		ev.DeltaY = -1
	case tea.MouseWheelDown:
		ev.DeltaY = 1
	case tea.MouseWheelLeft:
		ev.DeltaX = -1
	case tea.MouseWheelRight:
		ev.DeltaX = 1
	}
	return ev
}
