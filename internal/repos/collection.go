package repos

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"backoffice/internal/store"
)

// collection is a typed view over one backend collection. Its lock makes
// every read -> mutate -> write cycle exclusive for that collection.
type collection[T any] struct {
	name    store.Collection
	backend store.Backend
	mu      sync.RWMutex
}

func newCollection[T any](b store.Backend, name store.Collection) *collection[T] {
	return &collection[T]{name: name, backend: b}
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(ctx)
}

// update runs fn over the current records and writes back what it returns.
// Returning an error from fn aborts without writing.
func (c *collection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.backend.ReadCollection(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", c.name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw := make([]json.RawMessage, 0, len(items))
	for i, v := range items {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s[%d]: %w", c.name, i, err)
		}
		raw = append(raw, b)
	}
	return c.backend.WriteCollection(ctx, c.name, raw)
}

// nextIntID returns max(existing)+1, or 1 for an empty collection. Ids of
// deleted max entries are handed out again.
func nextIntID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, it := range items {
		if v := id(it); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
