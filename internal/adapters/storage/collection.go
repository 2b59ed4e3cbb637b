package storage

import (
	"context"
	"errors"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Collection serves one entity collection from the API when it is reachable
// and from the local store otherwise. A failed remote call is retried once
// against the local store, so callers never see ErrUnreachable.
type Collection[T entities.Identified] struct {
	name     string
	remote   Backend[T]
	local    *LocalBackend[T]
	resolver *Resolver
	counter  *Counter
	logger   *logger.Logger
}

// CollectionConfig wires a collection
type CollectionConfig[T entities.Identified] struct {
	Name     string
	Remote   Backend[T]
	Local    *LocalBackend[T]
	Resolver *Resolver
	Store    *localstore.Store
	Logger   *logger.Logger
}

// NewCollection creates a collection and seeds its id counter from whichever
// backend is reachable right now.
func NewCollection[T entities.Identified](ctx context.Context, cfg CollectionConfig[T]) *Collection[T] {
	c := &Collection[T]{
		name:     cfg.Name,
		remote:   cfg.Remote,
		local:    cfg.Local,
		resolver: cfg.Resolver,
		counter:  NewCounter(ctx, cfg.Store, localstore.CounterKey(cfg.Local.Key())),
		logger:   cfg.Logger.WithComponent(cfg.Name),
	}

	snapshot := c.local.Snapshot(ctx)
	if !c.resolver.UseLocal(ctx) {
		if items, err := c.remote.List(ctx, nil); err == nil {
			snapshot = items
		} else {
			c.logger.Warnw("Failed to load remote snapshot for id seeding", "error", err)
		}
	}
	c.counter.Observe(ctx, entities.MaxID(snapshot))

	return c
}

// Name returns the collection name used in logs
func (c *Collection[T]) Name() string {
	return c.name
}

// Local returns the local backend
func (c *Collection[T]) Local() *LocalBackend[T] {
	return c.local
}

// Resolver returns the resolver deciding between backends
func (c *Collection[T]) Resolver() *Resolver {
	return c.resolver
}

// Logger returns the collection logger
func (c *Collection[T]) Logger() *logger.Logger {
	return c.logger
}

// NextID returns the id the next Create will assign
func (c *Collection[T]) NextID() int {
	return c.counter.Peek()
}

// List returns the records matching filter
func (c *Collection[T]) List(ctx context.Context, filter ports.Filter) (Result[[]T], error) {
	res, err := serve(ctx, c, "list", func(b Backend[T]) ([]T, error) {
		return b.List(ctx, filter)
	})
	if err == nil {
		c.counter.Observe(ctx, entities.MaxID(res.Value))
	}
	return res, err
}

// Get returns one record or ErrNotFound
func (c *Collection[T]) Get(ctx context.Context, id int) (Result[T], error) {
	return serve(ctx, c, "get", func(b Backend[T]) (T, error) {
		return b.Get(ctx, id)
	})
}

// Create assigns the next id to item and stores it. When the API already
// holds that id, the counter is raised above the API's ids and the create is
// retried once with a fresh id.
func (c *Collection[T]) Create(ctx context.Context, item T) (Result[T], error) {
	item, err := entities.WithID(item, c.counter.Next(ctx))
	if err != nil {
		return Result[T]{}, err
	}

	return Do(ctx, c.resolver, c.logger, c.name, "create",
		func(ctx context.Context) (T, error) {
			created, err := c.remote.Create(ctx, item)
			if !errors.Is(err, entities.ErrConflict) {
				return created, err
			}

			c.logger.Warnw("Id already taken by the API, retrying", "id", item.GetID())
			items, err := c.remote.List(ctx, nil)
			if err != nil {
				return created, err
			}
			c.counter.Observe(ctx, entities.MaxID(items))
			if item, err = entities.WithID(item, c.counter.Next(ctx)); err != nil {
				return created, err
			}
			return c.remote.Create(ctx, item)
		},
		func(ctx context.Context) (T, error) {
			return c.local.Create(ctx, item)
		},
	)
}

// Update merges patch onto the stored record. The previous record is read
// from the same backend that applies the patch.
func (c *Collection[T]) Update(ctx context.Context, id int, patch entities.Patch) (Result[Change[T]], error) {
	patch = sanitize(patch)

	return serve(ctx, c, "update", func(b Backend[T]) (Change[T], error) {
		prev, err := b.Get(ctx, id)
		if err != nil {
			return Change[T]{}, err
		}
		cur, err := b.Patch(ctx, id, patch)
		if err != nil {
			return Change[T]{}, err
		}
		return Change[T]{Previous: prev, Current: cur}, nil
	})
}

// Delete removes a record; deleting an absent id is not an error
func (c *Collection[T]) Delete(ctx context.Context, id int) (ports.Source, error) {
	res, err := serve(ctx, c, "delete", func(b Backend[T]) (struct{}, error) {
		return struct{}{}, b.Delete(ctx, id)
	})
	return res.Source, err
}

func serve[T entities.Identified, V any](ctx context.Context, c *Collection[T], op string, fn func(Backend[T]) (V, error)) (Result[V], error) {
	return Do(ctx, c.resolver, c.logger, c.name, op,
		func(ctx context.Context) (V, error) { return fn(c.remote) },
		func(ctx context.Context) (V, error) { return fn(c.local) },
	)
}

// Do runs a custom operation under the fallback policy: local mode runs
// localFn only; remote mode runs remoteFn and, on any error, localFn.
func Do[V any](ctx context.Context, r *Resolver, log *logger.Logger, name, op string, remoteFn, localFn func(context.Context) (V, error)) (Result[V], error) {
	if r.UseLocal(ctx) {
		v, err := localFn(ctx)
		return Result[V]{Value: v, Source: ports.SourceLocal}, err
	}

	v, err := remoteFn(ctx)
	if err == nil {
		return Result[V]{Value: v, Source: ports.SourceRemote}, nil
	}

	log.LogFallback(name, op, err)
	v, err = localFn(ctx)
	return Result[V]{Value: v, Source: ports.SourceLocal}, err
}
