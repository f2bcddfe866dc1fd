package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrKeyNotFound is returned by KVStore.Get for a key that was never set.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCorruptDocument marks a stored value that is not valid JSON for its key.
	ErrCorruptDocument = errors.New("corrupt document")
)

// KVStore is the durable key-value store holding whole JSON documents.
// Set replaces the stored value; concurrent writers are last-writer-wins.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type memoryKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKV returns a process-local store, used for the memory backend and tests.
func NewMemoryKV() KVStore {
	return &memoryKV{entries: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// loadDocument decodes the JSON document stored at key into dest.
func loadDocument(ctx context.Context, kv KVStore, key string, dest interface{}) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: decode %q: %v", ErrCorruptDocument, key, err)
	}
	return nil
}

// saveDocument replaces the document at key with the JSON encoding of value.
func saveDocument(ctx context.Context, kv KVStore, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}
