package cascade

import (
	"context"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Kind identifies a task lifecycle change
type Kind string

const (
	TaskCreated Kind = "task.created"
	TaskUpdated Kind = "task.updated"
	TaskDeleted Kind = "task.deleted"
)

// Change describes one task write after it has been stored
type Change struct {
	Kind   Kind
	TaskID int
	// Task is the stored task after the write; zero for deletes
	Task entities.Task
	// Previous is the stored task before an update
	Previous *entities.Task
	// Source is the backend that served the write
	Source ports.Source
}

// HandlerFunc reacts to a change
type HandlerFunc func(ctx context.Context, change Change) error

type subscription struct {
	name    string
	handler HandlerFunc
}

// Bus delivers task changes to subscribed handlers synchronously,
// in subscription order, once per change.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	logger   *logger.Logger
}

// NewBus creates an empty bus
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[Kind][]subscription),
		logger:   log.WithComponent("cascade"),
	}
}

// Subscribe registers handler for kind under name
func (b *Bus) Subscribe(kind Kind, name string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], subscription{name: name, handler: handler})
}

// Publish runs every handler of change.Kind. A failing handler is logged
// and does not stop the remaining ones; nothing is rolled back.
func (b *Bus) Publish(ctx context.Context, change Change) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[change.Kind]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.handler(ctx, change); err != nil {
			b.logger.LogCascade(sub.name, change.TaskID, err)
			continue
		}
		b.logger.Debugw("Cascade handler done", "handler", sub.name, "kind", change.Kind, "task_id", change.TaskID)
	}
}
