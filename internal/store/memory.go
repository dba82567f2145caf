package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// MemoryBackend holds collections for the life of the process only. Records
// are copied on the way in and out, so callers never share its buffers.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[Collection][]json.RawMessage
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[Collection][]json.RawMessage)}
}

func (b *MemoryBackend) ReadCollection(_ context.Context, name Collection) ([]json.RawMessage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneRecords(b.data[name]), nil
}

func (b *MemoryBackend) WriteCollection(_ context.Context, name Collection, records []json.RawMessage) error {
	cp := cloneRecords(records)
	b.mu.Lock()
	b.data[name] = cp
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

func cloneRecords(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(in))
	for i, r := range in {
		out[i] = bytes.Clone(r)
	}
	return out
}
