package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// File persists all keys as one JSON document. Writes go to a temp file that
// is renamed over the original, so a crash never leaves a half-written file.
// Every read and batch starts from the document on disk, so processes sharing
// the path see each other's writes; two batches racing across processes
// resolve last-rename-wins.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile checks that path, if it exists, holds a valid document. The parent
// directory is created on the first write.
func NewFile(path string) (*File, error) {
	f := &File{path: path}
	if _, err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

func (f *File) load() (map[string]string, error) {
	items := make(map[string]string)

	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return items, nil
	case err != nil:
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}

	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", f.path, err)
	}
	return items, nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (f *File) Apply(ctx context.Context, batch Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return err
	}
	for _, key := range batch.Delete {
		delete(items, key)
	}
	for key, value := range batch.Set {
		items[key] = value
	}
	return f.write(items)
}

func (f *File) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".skillswap-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", f.path, err)
	}
	return nil
}
