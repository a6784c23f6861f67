package model

import "strings"

type Status string

const (
	StatusRemaining Status = "remaining"
	StatusCompleted Status = "completed"
)

// Filter selects which tasks a listing includes.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterMissing   Filter = "missing"
)

const (
	DateLayout = "2006-01-02" // YYYY-MM-DD
	TimeLayout = "15:04"      // HH:MM
)

// Display labels. "Missing" is never stored; it is derived from a Remaining
// task whose date is before today.
const (
	LabelRemaining = "Remaining"
	LabelCompleted = "Completed"
	LabelMissing   = "Missing"
)

type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status Status `json:"status"`
}

func (t Task) Completed() bool { return t.Status == StatusCompleted }

// SameSlot reports whether t has the given name, date and time. Surrounding
// whitespace on t's fields is ignored; records written by older versions were
// not trimmed.
func (t Task) SameSlot(name, date, tm string) bool {
	return strings.TrimSpace(t.Name) == name &&
		strings.TrimSpace(t.Date) == date &&
		strings.TrimSpace(t.Time) == tm
}
