// Package pkg holds utilities shared by guut's commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSpillDir is used when NewFileSpill is given no directory.
var DefaultSpillDir = filepath.Join(os.TempDir(), "guut-spill")

// FileSpill is an append-only, gob encoded list of T kept on disk so that a
// long campaign does not hold every session result in memory.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its file.
	Remove() error
}

type fileSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates a spill file for items of type T in dir.
func NewFileSpill[T any](dir string) (FileSpill[T], error) {
	if dir == "" {
		dir = DefaultSpillDir
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("Failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("Failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("Created filespill", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return fmt.Errorf("append to closed spill %s", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("Failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

func (f *fileSpill[T]) Path() string {
	return f.path
}

func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileSpill[T]) Get(index uint64) (T, error) {
	var found T

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStop
		}

		return nil
	})

	switch {
	case errors.Is(err, errStop):
		return found, nil
	case err != nil:
		return found, err
	default:
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}
}

var errStop = errors.New("stop")

// Range decodes the items in order. An error returned by fn stops the
// iteration and is returned as is.
func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("Failed to open spill", "path", f.path, "error", err)
		return fmt.Errorf("failed to open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close spill", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		// gob leaves zero-valued fields untouched, so every item needs a
		// fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("Failed to decode item", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	if err != nil {
		slog.Error("Failed to close spill", "path", f.path, "error", err)
		return fmt.Errorf("failed to close spill: %w", err)
	}

	slog.Debug("Closed filespill", "path", f.path, "length", f.length)

	return nil
}

func (f *fileSpill[T]) Remove() error {
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		slog.Error("Failed to remove spill", "path", f.path, "error", err)
		return fmt.Errorf("failed to remove spill: %w", err)
	}

	return nil
}
