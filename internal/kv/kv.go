// Package kv holds the key-value slot backends the task store persists into.
//
// A backend only needs whole-value semantics: read a key, overwrite a key,
// remove a key. Removing is distinct from writing an empty value.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

const sqliteFileName = "tasklist.sqlite"

var ErrClosed = errors.New("kv: store closed")

var reKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("invalid backend: %q (expected sqlite|file|memory)", s)
	}
}

// Open opens the backend rooted at dir.
func Open(ctx context.Context, backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, filepath.Join(dir, sqliteFileName))
	case BackendFile:
		return OpenDir(dir)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("invalid backend: %q", backend)
	}
}

func validateKey(key string) error {
	if !reKey.MatchString(key) {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
