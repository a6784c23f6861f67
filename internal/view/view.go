// Package view projects tasks into display rows. Everything here is a pure
// function of its inputs plus the "now" it is handed.
package view

import (
	"time"

	"tasklist-cli/internal/model"
)

type Row struct {
	// Position is the task's index in the full collection, not in the
	// filtered output, so actions can address it.
	Position int    `json:"position"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Struck   bool   `json:"struck"`
	Missing  bool   `json:"missing"`
	Label    string `json:"label"`
}

// Overdue reports whether date falls before local midnight of now's day.
// Dates that do not parse are never overdue.
func Overdue(date string, now time.Time) bool {
	d, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	midnight := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	return d.Before(midnight)
}

// IsMissing is the derived overdue state of a task.
func IsMissing(t model.Task, now time.Time) bool {
	return t.Status == model.StatusRemaining && Overdue(t.Date, now)
}

func Label(t model.Task, now time.Time) string {
	switch {
	case t.Status == model.StatusCompleted:
		return model.LabelCompleted
	case IsMissing(t, now):
		return model.LabelMissing
	default:
		return model.LabelRemaining
	}
}

func Matches(t model.Task, filter model.Filter, now time.Time) bool {
	switch filter {
	case model.FilterCompleted:
		return t.Status == model.StatusCompleted
	case model.FilterMissing:
		return IsMissing(t, now)
	default:
		return true
	}
}

func RowFor(position int, t model.Task, now time.Time) Row {
	missing := IsMissing(t, now)
	return Row{
		Position: position,
		ID:       t.ID,
		Name:     t.Name,
		Date:     t.Date,
		Time:     t.Time,
		Struck:   t.Status == model.StatusCompleted,
		Missing:  missing,
		Label:    Label(t, now),
	}
}

// Project filters tasks and turns them into rows, keeping collection order.
func Project(tasks []model.Task, filter model.Filter, now time.Time) []Row {
	rows := []Row{}
	for i, t := range tasks {
		if !Matches(t, filter, now) {
			continue
		}
		rows = append(rows, RowFor(i, t, now))
	}
	return rows
}
