package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// TaskFilter narrows the cached task list. Empty fields match everything.
type TaskFilter struct {
	Category string
	Search   string
	Priority entities.Priority
	// Status is "", "active" or "completed"
	Status string
}

// Match reports whether task passes the filter
func (f TaskFilter) Match(task entities.Task) bool {
	if f.Category != "" && task.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(task.Title), q) && !strings.Contains(strings.ToLower(task.Description), q) {
			return false
		}
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	switch f.Status {
	case "completed":
		return task.Completed
	case "active":
		return !task.Completed
	}
	return true
}

// TaskStore caches a snapshot of the tasks for the presentation layer
type TaskStore struct {
	mu      sync.RWMutex
	service ports.TaskService
	tasks   []entities.Task
	filter  TaskFilter
	err     error
}

// NewTaskStore creates a new task store
func NewTaskStore(service ports.TaskService) *TaskStore {
	return &TaskStore{service: service}
}

// Fetch reloads the snapshot from the service
func (s *TaskStore) Fetch(ctx context.Context) error {
	tasks, err := s.service.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// Tasks returns a copy of the cached tasks
func (s *TaskStore) Tasks() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Task(nil), s.tasks...)
}

// SetFilter replaces the active filter
func (s *TaskStore) SetFilter(f TaskFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filtered returns the cached tasks passing the active filter
func (s *TaskStore) Filtered() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if s.filter.Match(task) {
			out = append(out, task)
		}
	}
	return out
}

// Err returns the error of the last failed operation
func (s *TaskStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Add creates a task and appends it to the snapshot
func (s *TaskStore) Add(ctx context.Context, task entities.Task) (entities.Task, error) {
	created, err := s.service.Create(ctx, task)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Task{}, err
	}
	s.tasks = append(s.tasks, created)
	return created, nil
}

// Update patches a task and replaces it in the snapshot
func (s *TaskStore) Update(ctx context.Context, id int, patch entities.Patch) (entities.Task, error) {
	updated, err := s.service.Update(ctx, id, patch)
	return s.replace(updated, err)
}

// Complete sets the completed flag of a task
func (s *TaskStore) Complete(ctx context.Context, id int, completed bool) (entities.Task, error) {
	updated, err := s.service.CompleteTask(ctx, id, completed)
	return s.replace(updated, err)
}

// SetProgress sets the progress of a task
func (s *TaskStore) SetProgress(ctx context.Context, id, progress int) (entities.Task, error) {
	updated, err := s.service.UpdateProgress(ctx, id, progress)
	return s.replace(updated, err)
}

func (s *TaskStore) replace(updated entities.Task, err error) (entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Task{}, err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			return updated, nil
		}
	}
	s.tasks = append(s.tasks, updated)
	return updated, nil
}

// Delete removes a task
func (s *TaskStore) Delete(ctx context.Context, id int) error {
	err := s.service.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	out := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			out = append(out, task)
		}
	}
	s.tasks = out
	return nil
}
