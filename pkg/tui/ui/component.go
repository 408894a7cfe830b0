package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for reusable Bubble Tea widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable components only take keyboard input while focused. Focus and
// Blur return the matching focus event.
type Focusable interface {
	Component
	Focus() tea.Cmd
	Blur() tea.Cmd
	Focused() bool
}

// Placed components receive terminal-absolute mouse coordinates and need to
// know where their top-left corner was drawn.
type Placed interface {
	SetOrigin(x, y int)
}
