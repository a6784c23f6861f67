package store

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"tasklist-cli/internal/kv"
	"tasklist-cli/internal/model"
	"tasklist-cli/internal/view"
)

// DefaultKey is the slot holding the whole task collection.
const DefaultKey = "tasks"

// TaskStore owns the ordered task list and mirrors it into a single kv slot.
// It is not safe for concurrent use; callers dispatch one action at a time.
type TaskStore struct {
	kv     kv.Store
	key    string
	now    func() time.Time
	logger *log.Logger

	tasks []model.Task
}

type Option func(*TaskStore)

func WithKey(key string) Option {
	return func(s *TaskStore) {
		if strings.TrimSpace(key) != "" {
			s.key = strings.TrimSpace(key)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *TaskStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(backend kv.Store, opts ...Option) *TaskStore {
	s := &TaskStore{
		kv:     backend,
		key:    DefaultKey,
		now:    time.Now,
		logger: log.New(io.Discard, "", 0),
		tasks:  []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing
// slot yields an empty collection. Malformed data is dropped silently (the
// slot itself is left alone until the next mutation overwrites it).
func (s *TaskStore) Load(ctx context.Context) error {
	b, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		s.tasks = []model.Task{}
		return nil
	}
	tasks, err := decodeTasks(b)
	if err != nil {
		s.logger.Printf("store: malformed data in slot %q, starting empty: %v", s.key, err)
		s.tasks = []model.Task{}
		return nil
	}
	s.tasks = tasks

	// Ids must be stable between invocations, so persist any we had to assign.
	if backfillIDs(s.tasks) {
		s.logger.Printf("store: assigned ids to tasks in slot %q", s.key)
		if err := s.save(ctx, s.tasks); err != nil {
			s.logger.Printf("store: persisting assigned ids failed: %v", err)
		}
	}
	return nil
}

// save serializes tasks into the slot. It never touches s.tasks so callers
// can commit only after the write succeeded.
func (s *TaskStore) save(ctx context.Context, tasks []model.Task) error {
	b, err := encodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) commit(ctx context.Context, next []model.Task) error {
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *TaskStore) Key() string { return s.key }

func (s *TaskStore) Now() time.Time { return s.now() }

func (s *TaskStore) Len() int { return len(s.tasks) }

// Tasks returns a copy of the collection in insertion order.
func (s *TaskStore) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *TaskStore) At(index int) (model.Task, error) {
	if index < 0 || index >= len(s.tasks) {
		return model.Task{}, &NotFoundError{Ref: "#" + strconv.Itoa(index+1)}
	}
	return s.tasks[index], nil
}

func (s *TaskStore) IndexOf(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, false
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Resolve turns a user reference into a position. A reference is a task id,
// a unique id prefix, or a 1-based position as shown in listings.
func (s *TaskStore) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, &NotFoundError{Ref: `""`}
	}
	if LooksLikeID(ref) {
		if i, ok := s.IndexOf(ref); ok {
			return i, nil
		}
		match := -1
		for i, t := range s.tasks {
			if !strings.HasPrefix(t.ID, ref) {
				continue
			}
			if match >= 0 {
				return -1, fmt.Errorf("ambiguous task id prefix: %s", ref)
			}
			match = i
		}
		if match < 0 {
			return -1, &NotFoundError{Ref: ref}
		}
		return match, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(ref, "#"))
	if err != nil || n < 1 || n > len(s.tasks) {
		return -1, &NotFoundError{Ref: ref}
	}
	return n - 1, nil
}

// List yields (position, task) pairs matching filter. Each range over the
// returned sequence re-reads the current collection and clock.
func (s *TaskStore) List(filter model.Filter) iter.Seq2[int, model.Task] {
	return func(yield func(int, model.Task) bool) {
		now := s.now()
		for i, t := range s.tasks {
			if !view.Matches(t, filter, now) {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}
