package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"tasklist-cli/internal/kv"
	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, seed ...[3]string) (appModel, *store.TaskStore, *kv.Memory) {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	st := store.New(mem, store.WithClock(func() time.Time { return testNow }))
	if err := st.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, s := range seed {
		if _, err := st.Add(ctx, s[0], s[1], s[2]); err != nil {
			t.Fatalf("seed %v: %v", s, err)
		}
	}
	return newAppModel(ctx, st, Options{Output: io.Discard}), st, mem
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(appModel)
	}
	return m
}

func TestAddThroughForm(t *testing.T) {
	m, st, _ := newTestModel(t)

	m = press(m, "a")
	if m.mode != modeForm {
		t.Fatalf("expected form mode after a, got %v", m.mode)
	}
	m = press(m, "Pay bill", "tab", "2024-03-12", "tab", "09:00", "enter")

	if m.mode != modeList {
		t.Fatalf("expected list mode after save, got %v (notice %q)", m.mode, m.notice)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", st.Len())
	}
	got, _ := st.At(0)
	if got.Name != "Pay bill" || got.Date != "2024-03-12" || got.Time != "09:00" || got.Status != model.StatusRemaining {
		t.Fatalf("unexpected task: %+v", got)
	}
	if len(m.rows) != 1 || m.rows[0].ID != got.ID {
		t.Fatalf("expected the new task to be listed, got %+v", m.rows)
	}
	if m.noticeErr || !strings.Contains(m.notice, "Pay bill") {
		t.Fatalf("unexpected notice: %q (err=%v)", m.notice, m.noticeErr)
	}
}

func TestFormKeepsInputOnValidationError(t *testing.T) {
	m, st, _ := newTestModel(t)

	m = press(m, "a", "Pay bill", "enter")

	if m.mode != modeForm {
		t.Fatalf("expected the form to stay open")
	}
	if !m.noticeErr || !strings.Contains(m.notice, "fill in all fields") {
		t.Fatalf("expected a blocking notice, got %q", m.notice)
	}
	if name, _, _ := m.form.values(); name != "Pay bill" {
		t.Fatalf("expected form input kept, got %q", name)
	}
	if st.Len() != 0 {
		t.Fatalf("expected no task added, got %d", st.Len())
	}
}

func TestFormRejectsDuplicate(t *testing.T) {
	m, st, _ := newTestModel(t, [3]string{"Pay bill", "2024-03-12", "09:00"})

	m = press(m, "a", "Pay bill", "tab", "2024-03-12", "tab", "09:00", "enter")

	if m.mode != modeForm || !m.noticeErr || !strings.Contains(m.notice, "already exists") {
		t.Fatalf("expected duplicate notice with form open, got mode=%v notice=%q", m.mode, m.notice)
	}
	if st.Len() != 1 {
		t.Fatalf("expected collection unchanged, got %d", st.Len())
	}
}

func TestFormEscCancels(t *testing.T) {
	m, st, _ := newTestModel(t)

	m = press(m, "a", "Pay bill", "esc")

	if m.mode != modeList || st.Len() != 0 {
		t.Fatalf("expected cancel without changes, mode=%v len=%d", m.mode, st.Len())
	}
}

func TestEditKeepsStatus(t *testing.T) {
	m, st, _ := newTestModel(t, [3]string{"Pay bill", "2024-03-12", "09:00"})
	if err := st.ToggleStatus(context.Background(), 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	m.refresh()

	m = press(m, "e")
	if m.mode != modeForm {
		t.Fatalf("expected form mode after e")
	}
	if name, date, tm := m.form.values(); name != "Pay bill" || date != "2024-03-12" || tm != "09:00" {
		t.Fatalf("expected form prefilled, got %q %q %q", name, date, tm)
	}
	m.form.inputs[fieldName].SetValue("Pay rent")
	m = press(m, "enter")

	got, _ := st.At(0)
	if got.Name != "Pay rent" || got.Status != model.StatusCompleted {
		t.Fatalf("unexpected task after edit: %+v", got)
	}
}

func TestToggleUnderFilterAddressesTheRightTask(t *testing.T) {
	m, st, _ := newTestModel(t,
		[3]string{"Future", "2030-01-01", "09:00"},
		[3]string{"Overdue", "2020-01-01", "09:00"},
	)

	// all -> completed -> missing
	m = press(m, "f", "f")
	if m.filter != model.FilterMissing {
		t.Fatalf("expected missing filter, got %v", m.filter)
	}
	if len(m.rows) != 1 || m.rows[0].Name != "Overdue" {
		t.Fatalf("expected only the overdue task, got %+v", m.rows)
	}

	m = press(m, "space")

	future, _ := st.At(0)
	overdue, _ := st.At(1)
	if future.Status != model.StatusRemaining {
		t.Fatalf("expected Future untouched, got %+v", future)
	}
	if overdue.Status != model.StatusCompleted {
		t.Fatalf("expected Overdue completed, got %+v", overdue)
	}
	if len(m.rows) != 0 {
		t.Fatalf("expected the missing filter to be empty now, got %+v", m.rows)
	}

	m = press(m, "f")
	if m.filter != model.FilterAll || len(m.rows) != 2 {
		t.Fatalf("expected all filter with 2 rows, got %v %d", m.filter, len(m.rows))
	}
}

func TestDeleteStaleRowReportsNotFound(t *testing.T) {
	m, st, _ := newTestModel(t, [3]string{"Pay bill", "2024-03-12", "09:00"})

	// Someone else removes the task behind the view's back.
	if err := st.Delete(context.Background(), 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	m = press(m, "d")

	if !m.noticeErr || !strings.Contains(m.notice, "not found") {
		t.Fatalf("expected not-found notice, got %q", m.notice)
	}
	if len(m.rows) != 0 {
		t.Fatalf("expected rows refreshed, got %+v", m.rows)
	}
}

func TestDeleteMovesCursorBack(t *testing.T) {
	m, st, _ := newTestModel(t,
		[3]string{"One", "2024-03-12", "09:00"},
		[3]string{"Two", "2024-03-12", "10:00"},
	)

	m = press(m, "down", "d")

	if st.Len() != 1 {
		t.Fatalf("expected 1 task left, got %d", st.Len())
	}
	if left, _ := st.At(0); left.Name != "One" {
		t.Fatalf("expected One to remain, got %+v", left)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestClearAsksFirst(t *testing.T) {
	m, st, mem := newTestModel(t,
		[3]string{"One", "2024-03-12", "09:00"},
		[3]string{"Two", "2024-03-12", "10:00"},
	)

	m = press(m, "C")
	if m.mode != modeConfirmClear {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	m = press(m, "n")
	if m.mode != modeList || st.Len() != 2 {
		t.Fatalf("expected cancel to keep tasks, mode=%v len=%d", m.mode, st.Len())
	}

	m = press(m, "C", "y")
	if st.Len() != 0 || len(m.rows) != 0 {
		t.Fatalf("expected everything cleared, len=%d rows=%d", st.Len(), len(m.rows))
	}
	if mem.Keys() != 0 {
		t.Fatalf("expected the slot deleted, %d keys left", mem.Keys())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewPlain(t *testing.T) {
	m, st, _ := newTestModel(t,
		[3]string{"Overdue", "2020-01-01", "09:00"},
		[3]string{"Later", "2030-01-01", "09:00"},
	)
	if err := st.ToggleStatus(context.Background(), 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	m.refresh()

	out := m.View()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected plain output without color:\n%s", out)
	}
	for _, want := range []string{"> [ ] Overdue", "[x] Later", "Missing", "Completed", "filter: all"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
