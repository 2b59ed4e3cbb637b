package storage

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// LocalBackend keeps a collection as one JSON array in the local store
type LocalBackend[T entities.Identified] struct {
	store    *localstore.Store
	key      string
	defaults func() []T
}

// NewLocal creates a backend stored under key. defaults, when not nil,
// supplies the collection while nothing has been stored yet.
func NewLocal[T entities.Identified](store *localstore.Store, key string, defaults func() []T) *LocalBackend[T] {
	return &LocalBackend[T]{store: store, key: key, defaults: defaults}
}

// Key returns the local store key of the collection
func (b *LocalBackend[T]) Key() string {
	return b.key
}

// Snapshot returns a copy of the whole stored collection
func (b *LocalBackend[T]) Snapshot(ctx context.Context) []T {
	items := localstore.Load[[]T](ctx, b.store, b.key, nil)
	if items == nil {
		if b.defaults != nil {
			return b.defaults()
		}
		return []T{}
	}
	return items
}

func (b *LocalBackend[T]) save(ctx context.Context, items []T) {
	localstore.Save(ctx, b.store, b.key, items)
}

// List returns the stored items matching filter
func (b *LocalBackend[T]) List(ctx context.Context, filter ports.Filter) ([]T, error) {
	items := b.Snapshot(ctx)
	if len(filter) == 0 {
		return items, nil
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, filter) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Get retrieves a stored item by ID
func (b *LocalBackend[T]) Get(ctx context.Context, id int) (T, error) {
	for _, item := range b.Snapshot(ctx) {
		if item.GetID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %d: %w", b.key, id, entities.ErrNotFound)
}

// Create appends item to the stored collection
func (b *LocalBackend[T]) Create(ctx context.Context, item T) (T, error) {
	items := b.Snapshot(ctx)
	items = append(items, item)
	b.save(ctx, items)
	return item, nil
}

// Patch merges patch into the stored item with id
func (b *LocalBackend[T]) Patch(ctx context.Context, id int, patch entities.Patch) (T, error) {
	items := b.Snapshot(ctx)
	for i, item := range items {
		if item.GetID() != id {
			continue
		}
		updated, err := entities.Merge(item, patch)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("failed to merge %s %d: %w", b.key, id, err)
		}
		items[i] = updated
		b.save(ctx, items)
		return updated, nil
	}
	var zero T
	return zero, fmt.Errorf("%s %d: %w", b.key, id, entities.ErrNotFound)
}

// Delete removes the item with id. A missing item is not an error.
func (b *LocalBackend[T]) Delete(ctx context.Context, id int) error {
	items := b.Snapshot(ctx)
	out := items[:0]
	removed := false
	for _, item := range items {
		if item.GetID() == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	if removed {
		b.save(ctx, out)
	}
	return nil
}

// Replace overwrites the whole collection
func (b *LocalBackend[T]) Replace(ctx context.Context, items []T) {
	b.save(ctx, items)
}
