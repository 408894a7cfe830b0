package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	core "tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/tui/theme"
)

// renderStrip draws the visible cells of f into exactly width columns.
// Cells hanging off either edge are clipped.
func renderStrip(f core.Frame, width int, th theme.TimelineTheme) string {
	if width <= 0 {
		return ""
	}
	fade := theme.PhaseFade(f.Phase)
	var b strings.Builder
	col := 0
	for _, cell := range f.Cells {
		start, end := 0, cell.Width
		if cell.X < 0 {
			start = -cell.X
		}
		if cell.X+end > width {
			end = width - cell.X
		}
		if start >= end {
			continue
		}
		if gap := cell.X + start - col; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		style := cellStyle(cell, th)
		if fade > 0 {
			style = style.Foreground(th.Fade(fade))
		}
		b.WriteString(style.Render(clipColumns(fitCell(cell.Label, cell.Width), start, end)))
		col = cell.X + end
	}
	if col < width {
		b.WriteString(strings.Repeat(" ", width-col))
	}
	return b.String()
}

// fitCell truncates label to leave a one column gutter and pads it to w.
func fitCell(label string, w int) string {
	if w <= 0 {
		return ""
	}
	text := truncate.StringWithTail(label, uint(w-1), "…")
	if pad := w - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// clipColumns returns display columns [from, to) of text, exactly to-from
// wide. A wide glyph split by either edge becomes spaces.
func clipColumns(text string, from, to int) string {
	var b strings.Builder
	col, written := 0, 0
	for _, r := range text {
		if col >= to {
			break
		}
		w := ansi.StringWidth(string(r))
		switch {
		case w == 0:
			if written > 0 {
				b.WriteRune(r)
			}
		case col >= from && col+w <= to:
			b.WriteRune(r)
			written += w
		case col+w > from:
			n := min(col+w, to) - max(col, from)
			b.WriteString(strings.Repeat(" ", n))
			written += n
		}
		col += w
	}
	if pad := to - from - written; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

func cellStyle(cell core.Cell, th theme.TimelineTheme) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case cell.Locked:
		style = th.Locked
	case cell.Pending:
		style = th.Pending
	case cell.Boundary:
		style = th.Boundary
	case cell.Selected:
		style = th.Selected
	case cell.Item.IsCurrentPeriod:
		style = th.Current
	default:
		style = th.Item
	}
	if cell.Hovered {
		style = th.Hovered.Inherit(style)
	}
	return style
}

// renderHeader shows the granularity ladder with the active level
// highlighted and the transition direction while one runs.
func renderHeader(f core.Frame, mode selection.Mode, th theme.TimelineTheme) string {
	active := f.Granularity
	if f.Phase != core.PhaseIdle {
		active = f.To
	}
	parts := make([]string, 0, len(timeband.All))
	for _, g := range timeband.All {
		style := th.Header
		if g == active {
			style = th.HeaderActive
		}
		parts = append(parts, style.Render(g.String()))
	}
	ladder := strings.Join(parts, th.Header.Render(" › "))
	if f.Phase != core.PhaseIdle {
		ladder += th.Header.Render(fmt.Sprintf("  (%s → %s)", f.From, f.To))
	}
	return ladder + th.Header.Render("  ["+mode.String()+"]")
}

// renderStatus shows the hover hint, or the selected range when idle.
func renderStatus(f core.Frame, th theme.TimelineTheme) string {
	if f.Hint != "" {
		return th.Hint.Render(f.Hint)
	}
	if f.Range.Empty() {
		return th.Hint.Render("no selection")
	}
	text := f.Range.Start
	if f.Range.End != f.Range.Start {
		text = fmt.Sprintf("%s → %s", f.Range.Start, f.Range.End)
	}
	switch {
	case f.Selection.IsLocked:
		text += " (locked)"
	case f.Selection.IsRangeInProgress:
		text += " (pick end)"
	}
	return th.Range.Render(text)
}

// nextMode cycles period → range → single date → period.
func nextMode(mode selection.Mode) selection.Mode {
	switch {
	case mode.SingleDate:
		return selection.Mode{}
	case mode.AllowRange:
		return selection.Mode{SingleDate: true}
	}
	return selection.Mode{AllowRange: true}
}
