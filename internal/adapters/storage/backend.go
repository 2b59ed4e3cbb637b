package storage

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// Backend persists one entity collection
type Backend[T entities.Identified] interface {
	List(ctx context.Context, filter ports.Filter) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Patch(ctx context.Context, id int, patch entities.Patch) (T, error)
	Delete(ctx context.Context, id int) error
}

// Result carries a value together with the backend that produced it
type Result[V any] struct {
	Value  V
	Source ports.Source
}

// Change is the outcome of an update: the stored record before and after the patch
type Change[T any] struct {
	Previous T
	Current  T
}

// matches reports whether every filter field equals the item's JSON field
func matches(item interface{}, filter ports.Filter) bool {
	if len(filter) == 0 {
		return true
	}

	doc, err := entities.ToPatch(item)
	if err != nil {
		return false
	}
	for field, want := range filter {
		v, ok := doc[field]
		if !ok || fmt.Sprint(v) != want {
			return false
		}
	}
	return true
}

// sanitize drops the id from a patch so records keep their identity
func sanitize(patch entities.Patch) entities.Patch {
	out := make(entities.Patch, len(patch))
	for k, v := range patch {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
