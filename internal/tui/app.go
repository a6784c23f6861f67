package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/statusutil"
	"tasklist-cli/internal/store"
	"tasklist-cli/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmClear
)

type Options struct {
	// Color enables ANSI styling.
	Color bool
	// NameWidth caps the task name column (terminal cells).
	NameWidth int
	// Output is where styles detect the color profile (default stdout).
	Output io.Writer
}

type appModel struct {
	ctx   context.Context
	store *store.TaskStore
	opts  Options

	styles   styles
	keys     keyMap
	formKeys formKeyMap
	help     help.Model

	width  int
	height int

	mode   mode
	filter model.Filter
	rows   []view.Row
	cursor int
	form   taskForm

	notice    string
	noticeErr bool
}

func newAppModel(ctx context.Context, st *store.TaskStore, opts Options) appModel {
	if opts.NameWidth <= 0 {
		opts.NameWidth = view.DefaultNameWidth
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	m := appModel{
		ctx:      ctx,
		store:    st,
		opts:     opts,
		styles:   newStyles(opts.Output, opts.Color),
		keys:     defaultKeyMap(),
		formKeys: defaultFormKeyMap(),
		help:     help.New(),
		mode:     modeList,
		filter:   model.FilterAll,
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refresh re-projects the store through the current filter.
func (m *appModel) refresh() {
	m.rows = view.Project(m.store.Tasks(), m.filter, m.store.Now())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectID moves the cursor to the row for id, if it is visible.
func (m *appModel) selectID(id string) {
	for i, r := range m.rows {
		if r.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m appModel) selected() (view.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return view.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) setNotice(s string) {
	m.notice = s
	m.noticeErr = false
}

func (m *appModel) setError(err error) {
	m.notice = err.Error()
	m.noticeErr = true
}

// positionOf resolves a row back to its current position in the store.
func (m *appModel) positionOf(row view.Row) (int, bool) {
	pos, ok := m.store.IndexOf(row.ID)
	if !ok {
		m.setError(&store.NotFoundError{Ref: row.ID})
		m.refresh()
	}
	return pos, ok
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmClear:
			return m.updateConfirmClear(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.form = newTaskForm()
		m.mode = modeForm
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		pos, ok := m.positionOf(row)
		if !ok {
			return m, nil
		}
		t, err := m.store.At(pos)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.form = editTaskForm(t)
		m.mode = modeForm
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		pos, ok := m.positionOf(row)
		if !ok {
			return m, nil
		}
		if err := m.store.ToggleStatus(m.ctx, pos); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.selectID(row.ID)
		if t, err := m.store.At(pos); err == nil {
			m.setNotice(fmt.Sprintf("%s: %s", view.Label(t, m.store.Now()), t.Name))
		}

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		pos, ok := m.positionOf(row)
		if !ok {
			return m, nil
		}
		if err := m.store.Delete(m.ctx, pos); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setNotice("Deleted: " + row.Name)

	case key.Matches(msg, m.keys.Filter):
		m.filter = statusutil.NextFilter(m.filter)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Clear):
		if m.store.Len() == 0 {
			m.setNotice("Nothing to clear.")
			return m, nil
		}
		m.mode = modeConfirmClear

	case key.Matches(msg, m.keys.Reload):
		if err := m.store.Load(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setNotice("Reloaded.")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.mode = modeList
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case key.Matches(msg, m.formKeys.Prev):
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case key.Matches(msg, m.formKeys.Save):
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm adds or updates the task. On a validation or duplicate error the
// form stays open with its input.
func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	name, date, tm := m.form.values()

	if m.form.taskID == "" {
		pos, err := m.store.Add(m.ctx, name, date, tm)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		t, _ := m.store.At(pos)
		m.mode = modeList
		m.refresh()
		m.selectID(t.ID)
		m.setNotice("Added: " + t.Name)
		return m, nil
	}

	pos, ok := m.store.IndexOf(m.form.taskID)
	if !ok {
		m.mode = modeList
		m.refresh()
		m.setError(&store.NotFoundError{Ref: m.form.taskID})
		return m, nil
	}
	if err := m.store.Update(m.ctx, pos, name, date, tm); err != nil {
		m.setError(err)
		return m, nil
	}
	m.mode = modeList
	m.refresh()
	m.selectID(m.form.taskID)
	m.setNotice("Updated: " + strings.TrimSpace(name))
	return m, nil
}

func (m appModel) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		n := m.store.Len()
		m.mode = modeList
		if err := m.store.ClearAll(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setNotice("Cleared " + strconv.Itoa(n) + " task(s).")
	case "n", "N", "esc", "q", "ctrl+c":
		m.mode = modeList
		m.setNotice("Clear cancelled.")
	}
	return m, nil
}

func (m appModel) View() string {
	st := m.styles

	header := st.title.Render("Tasks") + "  " + st.muted.Render(fmt.Sprintf("filter: %s  (%d of %d)",
		m.filter, len(m.rows), m.store.Len()))

	var body, footer string
	switch m.mode {
	case modeForm:
		body = m.form.view(st)
		footer = m.help.View(m.formKeys)
	case modeConfirmClear:
		body = m.viewRows() + "\n\n" + st.errNotice.Render(
			fmt.Sprintf("Delete all %d task(s)? This cannot be undone. (y/n)", m.store.Len()))
		footer = st.muted.Render("y: clear  n/esc: cancel")
	default:
		body = m.viewRows()
		footer = m.help.View(m.keys)
	}

	parts := []string{header, body}
	if m.notice != "" {
		if m.noticeErr {
			parts = append(parts, st.errNotice.Render(m.notice))
		} else {
			parts = append(parts, st.notice.Render(m.notice))
		}
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n\n")
}

func (m appModel) viewRows() string {
	st := m.styles
	if len(m.rows) == 0 {
		if m.filter == model.FilterAll {
			return st.muted.Render("No tasks yet. Press a to add one.")
		}
		return st.muted.Render("No tasks match this filter. Press f to change it.")
	}

	nameW := 0
	for _, r := range m.rows {
		if w := lipgloss.Width(ansi.Truncate(r.Name, m.opts.NameWidth, "…")); w > nameW {
			nameW = w
		}
	}

	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = st.cursor.Render("> ")
		}
		name := ansi.Truncate(r.Name, m.opts.NameWidth, "…")
		pad := strings.Repeat(" ", nameW-lipgloss.Width(name))
		line := cursor +
			view.Checkbox(r) + " " +
			st.rows.NameStyle(r).Render(name) + pad + "  " +
			st.muted.Render(r.Date+" "+r.Time) + "  " +
			st.rows.NameStyle(r).UnsetStrikethrough().Render(r.Label)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
