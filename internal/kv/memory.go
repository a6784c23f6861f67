package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. Values are copied on the way in and out.
type Memory struct {
	mu     sync.Mutex
	m      map[string][]byte
	closed bool

	// FailSet, when set, is returned by every Set call (tests use it to
	// simulate a failing collaborator).
	FailSet error
}

func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (s *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Memory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.FailSet != nil {
		return s.FailSet
	}
	if err := validateKey(key); err != nil {
		return err
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := validateKey(key); err != nil {
		return err
	}
	delete(s.m, key)
	return nil
}

// Close marks the store closed. Keys keeps working so tests can inspect it.
func (s *Memory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Keys returns the number of keys currently stored.
func (s *Memory) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
