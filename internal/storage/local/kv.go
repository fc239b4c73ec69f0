// Package local provides the anonymous-session implementation of the
// storage.ListStore interface: each group lives as a JSON blob under a
// well-known key in a synchronous key-value store, written through on
// every mutation.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is a synchronous string key to string blob store, the shape of
// browser local storage. Get reports presence; Set and Delete are
// durable on return.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileKV implements KV on a single JSON file holding the whole key map.
// The file is rewritten on every mutation. The store is shared
// process-wide, so a mutex serializes access.
type FileKV struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// Ensure FileKV implements KV
var _ KV = (*FileKV)(nil)

// OpenFileKV loads (or initializes) the store at path, creating parent
// directories as needed.
func OpenFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	kv := &FileKV{path: path, entries: map[string]string{}}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}
	if err := json.Unmarshal(b, &kv.entries); err != nil {
		return nil, fmt.Errorf("failed to parse local store: %w", err)
	}
	return kv, nil
}

// Get returns the blob stored under key, if any.
func (kv *FileKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.entries[key]
	return v, ok, nil
}

// Set stores value under key and flushes to disk.
func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.entries[key] = value
	return kv.flush()
}

// Delete removes key and flushes to disk. Deleting an absent key is a
// durable no-op.
func (kv *FileKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if _, ok := kv.entries[key]; !ok {
		return nil
	}
	delete(kv.entries, key)
	return kv.flush()
}

// flush writes the whole map; callers hold the mutex.
func (kv *FileKV) flush() error {
	b, err := json.MarshalIndent(kv.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal local store: %w", err)
	}
	if err := os.WriteFile(kv.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	return nil
}

// MemKV is an in-memory KV for tests.
type MemKV struct {
	mu      sync.Mutex
	entries map[string]string

	// SetErr, when non-nil, is returned by every Set to simulate a
	// storage failure (the quota-exceeded case).
	SetErr error
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{entries: map[string]string{}}
}

// Get returns the blob stored under key, if any.
func (kv *MemKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (kv *MemKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.SetErr != nil {
		return kv.SetErr
	}
	kv.entries[key] = value
	return nil
}

// Delete removes key.
func (kv *MemKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.entries, key)
	return nil
}
