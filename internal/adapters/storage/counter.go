package storage

import (
	"context"
	"sync"

	"github.com/taskmaster/planner/internal/adapters/localstore"
)

// Counter hands out monotonic ids for one collection.
// The next id is persisted so ids are never reused across restarts or deletes.
type Counter struct {
	mu    sync.Mutex
	store *localstore.Store
	key   string
	next  int
}

// NewCounter creates a counter persisted under key
func NewCounter(ctx context.Context, store *localstore.Store, key string) *Counter {
	c := &Counter{store: store, key: key}
	c.next = c.persisted(ctx)
	return c
}

func (c *Counter) persisted(ctx context.Context) int {
	n := localstore.Load(ctx, c.store, c.key, 1)
	if n < 1 {
		return 1
	}
	return n
}

// Observe raises the counter above maxID
func (c *Counter) Observe(ctx context.Context, maxID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if maxID+1 > c.next {
		c.next = maxID + 1
		localstore.Save(ctx, c.store, c.key, c.next)
	}
}

// Next reserves and returns the next id
func (c *Counter) Next(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p := c.persisted(ctx); p > c.next {
		c.next = p
	}
	id := c.next
	c.next++
	localstore.Save(ctx, c.store, c.key, c.next)
	return id
}

// Peek returns the id the next call to Next will hand out
func (c *Counter) Peek() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}
