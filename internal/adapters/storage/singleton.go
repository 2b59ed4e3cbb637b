package storage

import (
	"context"
	"net/http"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// Singleton is a single JSON object resource, such as /stats
type Singleton[T any] struct {
	name     string
	path     string
	key      string
	client   *remote.Client
	store    *localstore.Store
	resolver *Resolver
	logger   *logger.Logger
}

// NewSingleton creates an object resource served at path and stored locally under key
func NewSingleton[T any](name, path, key string, client *remote.Client, store *localstore.Store, resolver *Resolver, log *logger.Logger) *Singleton[T] {
	return &Singleton[T]{
		name:     name,
		path:     path,
		key:      key,
		client:   client,
		store:    store,
		resolver: resolver,
		logger:   log.WithComponent(name),
	}
}

// Get returns the object; the local default is the zero value
func (s *Singleton[T]) Get(ctx context.Context) (Result[T], error) {
	return Do(ctx, s.resolver, s.logger, s.name, "get",
		func(ctx context.Context) (T, error) {
			return remote.Get[T](ctx, s.client, s.path, nil)
		},
		func(ctx context.Context) (T, error) {
			var zero T
			return localstore.Load(ctx, s.store, s.key, zero), nil
		},
	)
}

// Patch merges patch onto the object and returns the result
func (s *Singleton[T]) Patch(ctx context.Context, patch entities.Patch) (Result[T], error) {
	return Do(ctx, s.resolver, s.logger, s.name, "patch",
		func(ctx context.Context) (T, error) {
			return remote.Send[T](ctx, s.client, http.MethodPatch, s.path, patch)
		},
		func(ctx context.Context) (T, error) {
			var zero T
			current := localstore.Load(ctx, s.store, s.key, zero)
			updated, err := entities.Merge(current, patch)
			if err != nil {
				return zero, err
			}
			localstore.Save(ctx, s.store, s.key, updated)
			return updated, nil
		},
	)
}
