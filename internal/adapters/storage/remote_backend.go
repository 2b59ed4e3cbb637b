package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// RemoteBackend keeps a collection in the REST API
type RemoteBackend[T entities.Identified] struct {
	client *remote.Client
	path   string
}

// NewRemote creates a backend for the collection served at path, e.g. "/tasks"
func NewRemote[T entities.Identified](client *remote.Client, path string) *RemoteBackend[T] {
	return &RemoteBackend[T]{client: client, path: path}
}

func (b *RemoteBackend[T]) itemPath(id int) string {
	return b.path + "/" + strconv.Itoa(id)
}

// List fetches the collection, passing filter as query parameters
func (b *RemoteBackend[T]) List(ctx context.Context, filter ports.Filter) ([]T, error) {
	query := url.Values{}
	for k, v := range filter {
		query.Set(k, v)
	}
	return remote.Get[[]T](ctx, b.client, b.path, query)
}

// Get retrieves an item by ID
func (b *RemoteBackend[T]) Get(ctx context.Context, id int) (T, error) {
	return remote.Get[T](ctx, b.client, b.itemPath(id), nil)
}

// Create posts item to the collection
func (b *RemoteBackend[T]) Create(ctx context.Context, item T) (T, error) {
	return remote.Send[T](ctx, b.client, http.MethodPost, b.path, item)
}

// Patch sends a partial update for the item with id
func (b *RemoteBackend[T]) Patch(ctx context.Context, id int, patch entities.Patch) (T, error) {
	return remote.Send[T](ctx, b.client, http.MethodPatch, b.itemPath(id), patch)
}

// Delete removes the item with id. A 404 counts as deleted.
func (b *RemoteBackend[T]) Delete(ctx context.Context, id int) error {
	err := b.client.Do(ctx, http.MethodDelete, b.itemPath(id), nil, nil, nil)
	if errors.Is(err, entities.ErrNotFound) {
		return nil
	}
	return err
}
