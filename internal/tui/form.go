package tui

import (
	"strings"

	"tasklist-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldDate
	fieldTime
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Date", "Time"}

// taskForm edits name, date and time. taskID is empty when adding.
type taskForm struct {
	taskID string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newTaskForm() taskForm {
	var f taskForm

	f.inputs[fieldName] = textinput.New()
	f.inputs[fieldName].Placeholder = "What needs doing"
	f.inputs[fieldName].CharLimit = 200
	f.inputs[fieldName].Width = 40

	f.inputs[fieldDate] = textinput.New()
	f.inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldDate].CharLimit = len(model.DateLayout)
	f.inputs[fieldDate].Width = 12

	f.inputs[fieldTime] = textinput.New()
	f.inputs[fieldTime].Placeholder = "HH:MM"
	f.inputs[fieldTime].CharLimit = len(model.TimeLayout)
	f.inputs[fieldTime].Width = 7

	f.setFocus(fieldName)
	return f
}

func editTaskForm(t model.Task) taskForm {
	f := newTaskForm()
	f.taskID = t.ID
	f.inputs[fieldName].SetValue(t.Name)
	f.inputs[fieldDate].SetValue(t.Date)
	f.inputs[fieldTime].SetValue(t.Time)
	f.inputs[fieldName].CursorEnd()
	return f
}

func (f *taskForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f taskForm) values() (name, date, tm string) {
	return f.inputs[fieldName].Value(), f.inputs[fieldDate].Value(), f.inputs[fieldTime].Value()
}

func (f taskForm) update(msg tea.Msg) (taskForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f taskForm) view(st styles) string {
	var b strings.Builder
	title := "New task"
	if f.taskID != "" {
		title = "Edit task " + f.taskID
	}
	b.WriteString(st.title.Render(title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := st.label.Render(fieldLabels[i])
		if i == f.focus {
			label = st.labelFocused.Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
