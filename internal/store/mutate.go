package store

import (
	"context"
	"fmt"
	"slices"

	"tasklist-cli/internal/model"
)

// Add appends a new remaining task and returns its position.
func (s *TaskStore) Add(ctx context.Context, name, date, tm string) (int, error) {
	name, date, tm = normalizeInput(name, date, tm)
	if err := ValidateInput(name, date, tm); err != nil {
		return -1, err
	}
	if s.FindDuplicate(name, date, tm, -1) {
		return -1, &DuplicateTaskError{Name: name, Date: date, Time: tm}
	}

	next := slices.Clone(s.tasks)
	next = append(next, model.Task{
		ID:     newID(s.tasks),
		Name:   name,
		Date:   date,
		Time:   tm,
		Status: model.StatusRemaining,
	})
	if err := s.commit(ctx, next); err != nil {
		return -1, err
	}
	return len(next) - 1, nil
}

// Update replaces name, date and time of the task at index. Status and id
// are kept.
func (s *TaskStore) Update(ctx context.Context, index int, name, date, tm string) error {
	if _, err := s.At(index); err != nil {
		return err
	}
	name, date, tm = normalizeInput(name, date, tm)
	if err := ValidateInput(name, date, tm); err != nil {
		return err
	}
	if s.FindDuplicate(name, date, tm, index) {
		return &DuplicateTaskError{Name: name, Date: date, Time: tm}
	}

	next := slices.Clone(s.tasks)
	next[index].Name = name
	next[index].Date = date
	next[index].Time = tm
	return s.commit(ctx, next)
}

// ToggleStatus flips the task at index between remaining and completed.
func (s *TaskStore) ToggleStatus(ctx context.Context, index int) error {
	t, err := s.At(index)
	if err != nil {
		return err
	}
	next := slices.Clone(s.tasks)
	if t.Status == model.StatusCompleted {
		next[index].Status = model.StatusRemaining
	} else {
		next[index].Status = model.StatusCompleted
	}
	return s.commit(ctx, next)
}

// Delete removes the task at index; later tasks shift down by one.
func (s *TaskStore) Delete(ctx context.Context, index int) error {
	if _, err := s.At(index); err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(s.tasks), index, index+1)
	return s.commit(ctx, next)
}

// ClearAll empties the collection and removes the slot entirely.
func (s *TaskStore) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	s.tasks = []model.Task{}
	return nil
}
