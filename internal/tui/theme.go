package tui

import (
	"io"

	"tasklist-cli/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal backgrounds, so
// colors are lipgloss.AdaptiveColor pairs.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorAccent lipgloss.TerminalColor = ac("27", "62")
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorError  lipgloss.TerminalColor = ac("160", "203")
)

type styles struct {
	rows view.Styles

	title        lipgloss.Style
	label        lipgloss.Style
	labelFocused lipgloss.Style
	cursor       lipgloss.Style
	muted        lipgloss.Style
	notice       lipgloss.Style
	errNotice    lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := view.NewRenderer(w, color)
	return styles{
		rows:         view.NewStyles(r),
		title:        r.NewStyle().Bold(true).Foreground(colorAccent),
		label:        r.NewStyle().Foreground(colorMuted),
		labelFocused: r.NewStyle().Bold(true).Foreground(colorAccent),
		cursor:       r.NewStyle().Bold(true).Foreground(colorAccent),
		muted:        r.NewStyle().Foreground(colorMuted),
		notice:       r.NewStyle().Foreground(colorAccent),
		errNotice:    r.NewStyle().Bold(true).Foreground(colorError),
	}
}
