package kv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Dir stores each key as <dir>/<key>.json. Writes go through a temp file and
// rename so a crash never leaves a half-written slot.
type Dir struct {
	dir    string
	closed bool
}

func OpenDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dir{dir: dir}, nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

func (d *Dir) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if d.closed {
		return nil, false, ErrClosed
	}
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(d.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (d *Dir) Set(ctx context.Context, key string, value []byte) error {
	if d.closed {
		return ErrClosed
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := d.path(key)
	if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
		return err
	}
	// atomic.WriteFile doesn't set permissions for new files.
	return os.Chmod(path, 0o644)
}

func (d *Dir) Delete(ctx context.Context, key string) error {
	if d.closed {
		return ErrClosed
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(d.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Dir) Close() error {
	d.closed = true
	return nil
}
