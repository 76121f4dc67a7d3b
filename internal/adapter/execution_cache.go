package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"guut.dev/pkg/guut/internal/telemetry"
)

// ExecutionCache memoizes sandbox results keyed by everything that determines
// them: the mutant, the program source and the model code.
type ExecutionCache interface {
	// Get decodes the value stored under key into v and reports whether it
	// was found.
	Get(ctx context.Context, key string, v any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	Close() error
}

// CacheKey derives a fixed-size key from its parts.
func CacheKey(parts ...string) string {
	h := sha256.New()

	for _, part := range parts {
		_, _ = fmt.Fprintf(h, "%d:%s;", len(part), part)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// BadgerExecutionCache stores results in a badger database.
type BadgerExecutionCache struct {
	db *badger.DB
}

// NewBadgerExecutionCache opens the cache at dir. An empty dir opens an
// in-memory cache.
func NewBadgerExecutionCache(dir string) (*BadgerExecutionCache, error) {
	var opts badger.Options

	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}

		opts = badger.DefaultOptions(dir)
	}

	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open execution cache: %w", err)
	}

	return &BadgerExecutionCache{db: db}, nil
}

// Get implements ExecutionCache.
func (c *BadgerExecutionCache) Get(_ context.Context, key string, v any) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		telemetry.ObserveCacheLookup(false)

		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	telemetry.ObserveCacheLookup(true)

	return true, nil
}

// Put implements ExecutionCache.
func (c *BadgerExecutionCache) Put(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Close closes the database.
func (c *BadgerExecutionCache) Close() error {
	return c.db.Close()
}

// NopExecutionCache never stores anything.
type NopExecutionCache struct{}

// Get always misses.
func (NopExecutionCache) Get(context.Context, string, any) (bool, error) { return false, nil }

// Put discards v.
func (NopExecutionCache) Put(context.Context, string, any) error { return nil }

// Close does nothing.
func (NopExecutionCache) Close() error { return nil }
