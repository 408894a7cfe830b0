package timeline

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap lists the timeline bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Select    key.Binding
	Clear     key.Binding
	Today     key.Binding
	Mode      key.Binding
	Goto      key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("pgup", "H"),
			key.WithHelp("pgup", "page earlier"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("pgdown", "L"),
			key.WithHelp("pgdn", "page later"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("up", "k", "+", "="),
			key.WithHelp("↑/+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/-", "zoom out"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "space", " "),
			key.WithHelp("enter", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "clear"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g", "/"),
			key.WithHelp("g", "go to date"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Select, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.PageLeft, k.PageRight},
		{k.ZoomIn, k.ZoomOut, k.Today, k.Goto},
		{k.Select, k.Clear, k.Mode, k.Help},
	}
}
