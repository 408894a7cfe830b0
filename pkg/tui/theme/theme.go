package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/timeband/pkg/timeline"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark     bool
	Timeline TimelineTheme
	Footer   FooterTheme
	Panel    PanelTheme
}

// TimelineTheme styles the item strip and its header.
type TimelineTheme struct {
	Item     lipgloss.Style
	Current  lipgloss.Style
	Selected lipgloss.Style
	Boundary lipgloss.Style
	Locked   lipgloss.Style
	Pending  lipgloss.Style
	Hovered  lipgloss.Style

	Header       lipgloss.Style
	HeaderActive lipgloss.Style
	Hint         lipgloss.Style
	Range        lipgloss.Style

	// Foreground and Background are the endpoints of transition fades.
	Foreground colorful.Color
	Background colorful.Color
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
}

// Detect picks the palette matching the terminal background.
func Detect() Theme {
	return Default(termenv.HasDarkBackground())
}

// Default returns the built-in theme for a dark or light terminal.
func Default(dark bool) Theme {
	fg, bg, accent, muted := hex("#D0D0D0"), hex("#1C1C1C"), "212", "244"
	if !dark {
		fg, bg, accent, muted = hex("#303030"), hex("#FAFAFA"), "162", "240"
	}

	item := lipgloss.NewStyle().Foreground(fg)
	selected := lipgloss.NewStyle().
		Foreground(bg).
		Background(lipgloss.Color(accent))

	return Theme{
		Dark: dark,
		Timeline: TimelineTheme{
			Item:         item,
			Current:      item.Bold(true).Underline(true),
			Selected:     selected,
			Boundary:     selected.Bold(true),
			Locked:       selected.Bold(true).Underline(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true).Underline(true),
			Hovered:      item.Reverse(true),
			Header:       lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			HeaderActive: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
			Range:        lipgloss.NewStyle().Bold(true),
			Foreground:   fg,
			Background:   bg,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")),
			FrameFocused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(accent)),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Fade returns the item foreground moved amount of the way towards the
// background.
func (t TimelineTheme) Fade(amount float64) colorful.Color {
	switch {
	case amount <= 0:
		return t.Foreground
	case amount >= 1:
		return t.Background
	}
	return t.Foreground.BlendLab(t.Background, amount).Clamped()
}

// PhaseFade is how far items fade during each transition phase.
func PhaseFade(p timeline.Phase) float64 {
	switch p {
	case timeline.PhaseOutgoing:
		return 0.6
	case timeline.PhaseIncoming:
		return 0.3
	}
	return 0
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
