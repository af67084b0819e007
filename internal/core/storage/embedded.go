package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// EmbeddedStore runs an in-process Redis server and talks to it through RedisStore.
// Every write is flushed to a JSON snapshot at path, which is loaded back on open.
type EmbeddedStore struct {
	*RedisStore
	server *miniredis.Miniredis
	path   string
	mu     sync.Mutex
}

type snapshotEntry struct {
	Value     []byte     `json:"value"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewEmbeddedStore starts the in-process server and restores the snapshot at path.
// An empty path keeps the data in memory only.
func NewEmbeddedStore(path string) (*EmbeddedStore, error) {
	mr, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start embedded redis: %w", err)
	}

	e := &EmbeddedStore{server: mr, path: path}
	if err := e.load(); err != nil {
		mr.Close()
		return nil, err
	}

	rs, err := NewRedisStore("redis://" + mr.Addr())
	if err != nil {
		mr.Close()
		return nil, err
	}
	e.RedisStore = rs
	return e, nil
}

// Set stores the value and rewrites the snapshot.
func (e *EmbeddedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := e.RedisStore.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return e.save()
}

// Delete removes the key and rewrites the snapshot.
func (e *EmbeddedStore) Delete(ctx context.Context, key string) error {
	if err := e.RedisStore.Delete(ctx, key); err != nil {
		return err
	}
	return e.save()
}

// Close writes a final snapshot and shuts down both the client and the in-process server.
func (e *EmbeddedStore) Close() error {
	saveErr := e.save()
	err := e.RedisStore.Close()
	e.server.Close()
	return errors.Join(saveErr, err)
}

func (e *EmbeddedStore) load() error {
	if e.path == "" {
		return nil
	}

	data, err := os.ReadFile(e.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", e.path, err)
	}

	var entries map[string]snapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", e.path, err)
	}

	now := time.Now()
	for key, entry := range entries {
		if entry.ExpiresAt != nil && !entry.ExpiresAt.After(now) {
			continue
		}
		if err := e.server.Set(key, string(entry.Value)); err != nil {
			return fmt.Errorf("failed to restore key %s: %w", key, err)
		}
		if entry.ExpiresAt != nil {
			e.server.SetTTL(key, entry.ExpiresAt.Sub(now))
		}
	}
	return nil
}

func (e *EmbeddedStore) save() error {
	if e.path == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	entries := make(map[string]snapshotEntry)
	for _, key := range e.server.Keys() {
		val, err := e.server.Get(key)
		if err != nil {
			continue
		}
		entry := snapshotEntry{Value: []byte(val)}
		if ttl := e.server.TTL(key); ttl > 0 {
			at := now.Add(ttl)
			entry.ExpiresAt = &at
		}
		entries[key] = entry
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create snapshot dir: %w", ErrUnavailable, err)
	}
	tmp := e.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write snapshot: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("%w: failed to replace snapshot: %w", ErrUnavailable, err)
	}
	return nil
}
