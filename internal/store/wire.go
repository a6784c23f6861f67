package store

import (
	"encoding/json"
	"strings"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/statusutil"
)

// wireTask is the persisted record. Status is "none" or "true"; the id is
// optional so slots written before ids existed still load.
type wireTask struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func encodeTasks(tasks []model.Task) ([]byte, error) {
	out := make([]wireTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, wireTask{
			ID:     t.ID,
			Name:   t.Name,
			Date:   t.Date,
			Time:   t.Time,
			Status: statusutil.StatusToWire(t.Status),
		})
	}
	return json.Marshal(out)
}

// decodeTasks parses a persisted slot. A null or blank payload is an empty
// collection.
func decodeTasks(b []byte) ([]model.Task, error) {
	if isNullOrEmpty(b) {
		return []model.Task{}, nil
	}
	var raw []wireTask
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(raw))
	for _, w := range raw {
		st, err := statusutil.StatusFromWire(w.Status)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Task{
			ID:     strings.TrimSpace(w.ID),
			Name:   w.Name,
			Date:   w.Date,
			Time:   w.Time,
			Status: st,
		})
	}
	return out, nil
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}
