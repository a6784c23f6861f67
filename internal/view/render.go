package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const DefaultNameWidth = 40

type RenderOptions struct {
	// Color enables ANSI styling. When false the output is plain text.
	Color bool
	// NameWidth caps the task name column (in terminal cells).
	NameWidth int
	// Empty is printed instead of a table when there are no rows.
	Empty string
}

// Styles used by both the table renderer and the TUI.
type Styles struct {
	Header    lipgloss.Style
	Completed lipgloss.Style
	Missing   lipgloss.Style
	Remaining lipgloss.Style
	Muted     lipgloss.Style
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorMissing lipgloss.TerminalColor = ac("160", "203") // red
	colorDone    lipgloss.TerminalColor = ac("28", "78")   // green
	colorAccent  lipgloss.TerminalColor = ac("27", "62")   // blue
)

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(colorAccent),
		Completed: r.NewStyle().Strikethrough(true).Foreground(colorDone),
		Missing:   r.NewStyle().Bold(true).Foreground(colorMissing),
		Remaining: r.NewStyle(),
		Muted:     r.NewStyle().Foreground(colorMuted),
	}
}

// NewRenderer returns a lipgloss renderer for w. Without color the profile is
// forced to ASCII so no escape sequences are emitted.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NameStyle picks the style for a row's name cell.
func (st Styles) NameStyle(row Row) lipgloss.Style {
	switch {
	case row.Struck:
		return st.Completed
	case row.Missing:
		return st.Missing
	default:
		return st.Remaining
	}
}

func Checkbox(row Row) string {
	if row.Struck {
		return "[x]"
	}
	return "[ ]"
}

// Render writes rows as an aligned table.
func Render(w io.Writer, rows []Row, opts RenderOptions) error {
	if len(rows) == 0 {
		msg := opts.Empty
		if msg == "" {
			msg = "No tasks."
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	nameWidth := opts.NameWidth
	if nameWidth <= 0 {
		nameWidth = DefaultNameWidth
	}
	r := NewRenderer(w, opts.Color)
	st := NewStyles(r)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			strconv.Itoa(row.Position + 1),
			Checkbox(row),
			row.ID,
			ansi.Truncate(row.Name, nameWidth, "…"),
			strings.TrimSpace(row.Date + " " + row.Time),
			row.Label,
		})
	}
	header := []string{"#", "", "ID", "TASK", "DUE", "STATUS"}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, c := range cells {
		for i, s := range c {
			if n := lipgloss.Width(s); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	writeLine := func(parts []string) {
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteByte('\n')
	}

	hp := make([]string, len(header))
	for i, h := range header {
		hp[i] = st.Header.Render(pad(h, widths[i]))
	}
	writeLine(hp)

	for ri, c := range cells {
		row := rows[ri]
		parts := make([]string, len(c))
		for i, s := range c {
			cell := pad(s, widths[i])
			switch i {
			case 3:
				// Style only the text so strike-through doesn't run into the padding.
				cell = st.NameStyle(row).Render(s) + strings.Repeat(" ", widths[i]-lipgloss.Width(s))
			case 5:
				cell = st.NameStyle(row).UnsetStrikethrough().Render(s)
			case 0, 2:
				cell = st.Muted.Render(cell)
			}
			parts[i] = cell
		}
		writeLine(parts)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
