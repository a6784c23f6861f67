package store

import (
	"regexp"
	"strings"
	"time"

	"tasklist-cli/internal/model"
)

var (
	reDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTime = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidateInput checks that name, date and time are all present, that date
// is YYYY-MM-DD and that time is HH:MM (24h).
func ValidateInput(name, date, tm string) error {
	name, date, tm = normalizeInput(name, date, tm)
	switch {
	case name == "":
		return &ValidationError{Field: "name"}
	case date == "":
		return &ValidationError{Field: "date"}
	case tm == "":
		return &ValidationError{Field: "time"}
	}
	if !reDate.MatchString(date) {
		return &ValidationError{Field: "date", Reason: "expected YYYY-MM-DD, got " + date}
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return &ValidationError{Field: "date", Reason: "not a calendar date: " + date}
	}
	if !reTime.MatchString(tm) {
		return &ValidationError{Field: "time", Reason: "expected HH:MM, got " + tm}
	}
	if _, err := time.Parse(model.TimeLayout, tm); err != nil {
		return &ValidationError{Field: "time", Reason: "not a time of day: " + tm}
	}
	return nil
}

func (s *TaskStore) ValidateInput(name, date, tm string) error {
	return ValidateInput(name, date, tm)
}

// FindDuplicate reports whether a task other than the one at exclude has
// exactly this name, date and time. Pass -1 to exclude nothing.
func (s *TaskStore) FindDuplicate(name, date, tm string, exclude int) bool {
	name, date, tm = normalizeInput(name, date, tm)
	for i, t := range s.tasks {
		if i == exclude {
			continue
		}
		if t.SameSlot(name, date, tm) {
			return true
		}
	}
	return false
}

func normalizeInput(name, date, tm string) (string, string, string) {
	return strings.TrimSpace(name), strings.TrimSpace(date), strings.TrimSpace(tm)
}
