package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// File keeps one file per key under dir. Writes go to a temp file that is
// renamed over the target, so readers never see a partial value.
type File struct {
	mu  sync.RWMutex
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "storage dir")
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key)+".json")
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(key)
}

func (f *File) read(key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "read")
	}
	return string(b), true, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(key, value)
}

// Update is atomic for every user of this File value. Separate processes
// on one directory are not coordinated; use redis or postgres for that.
func (f *File) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok, err := f.read(key)
	if err != nil {
		return err
	}
	next, err := fn(cur, ok)
	if err != nil {
		return err
	}
	return f.write(key, next)
}

// write must be called with mu held.
func (f *File) write(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err = tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write")
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), f.path(key)), "rename")
}
