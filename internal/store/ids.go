package store

import (
	"strings"

	"tasklist-cli/internal/model"

	"github.com/google/uuid"
)

const idPrefix = "t-"

// newID returns t-<8 hex chars>, widening the suffix if it keeps colliding
// with ids already in tasks.
func newID(tasks []model.Task) string {
	for _, ln := range []int{8, 12, 16} {
		for i := 0; i < 20; i++ {
			suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:ln]
			id := idPrefix + suffix
			if !idExists(tasks, id) {
				return id
			}
		}
	}
	return idPrefix + uuid.NewString()
}

func idExists(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// backfillIDs assigns ids to tasks loaded without one and re-ids duplicates.
// It reports whether anything changed.
func backfillIDs(tasks []model.Task) bool {
	changed := false
	seen := map[string]bool{}
	for i := range tasks {
		id := tasks[i].ID
		if id == "" || seen[id] {
			tasks[i].ID = newID(tasks)
			changed = true
		}
		seen[tasks[i].ID] = true
	}
	return changed
}

// LooksLikeID reports whether s has the shape of a task id.
func LooksLikeID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, idPrefix) && len(s) > len(idPrefix)
}
