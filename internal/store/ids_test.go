package store

import (
	"regexp"
	"testing"

	"tasklist-cli/internal/model"
)

var reShortID = regexp.MustCompile(`^t-[0-9a-f]{8}$`)

func TestNewID_ShortHex(t *testing.T) {
	id := newID(nil)
	if !reShortID.MatchString(id) {
		t.Fatalf("expected t-<8 hex>, got %q", id)
	}
}

func TestNewID_AvoidsExisting(t *testing.T) {
	var tasks []model.Task
	for i := 0; i < 200; i++ {
		id := newID(tasks)
		if idExists(tasks, id) {
			t.Fatalf("newID returned an existing id %q", id)
		}
		tasks = append(tasks, model.Task{ID: id})
	}
}

func TestBackfillIDs(t *testing.T) {
	tasks := []model.Task{
		{ID: "t-aaaaaaaa", Name: "a"},
		{Name: "b"},
		{ID: "t-aaaaaaaa", Name: "c"},
	}
	if !backfillIDs(tasks) {
		t.Fatalf("expected backfill to report a change")
	}
	if tasks[0].ID != "t-aaaaaaaa" {
		t.Fatalf("expected the first id kept, got %q", tasks[0].ID)
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if !LooksLikeID(task.ID) || seen[task.ID] {
			t.Fatalf("expected unique ids, got %+v", tasks)
		}
		seen[task.ID] = true
	}

	if backfillIDs(tasks) {
		t.Fatalf("expected no change on a second pass")
	}
}

func TestLooksLikeID(t *testing.T) {
	cases := map[string]bool{
		"t-3f9a01bc":   true,
		" t-3f ":       true,
		"t-":           false,
		"3":            false,
		"#3":           false,
		"task-3f9a01b": false,
	}
	for in, want := range cases {
		if got := LooksLikeID(in); got != want {
			t.Fatalf("LooksLikeID(%q): expected %v, got %v", in, want, got)
		}
	}
}
